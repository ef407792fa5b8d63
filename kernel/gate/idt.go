package gate

import "unsafe"

const (
	// kernelCodeSelector is the GDT selector of the kernel code segment
	// set up by the rt0 code.
	kernelCodeSelector = 0x08

	// gateTypeInterrupt marks a present, ring-0 interrupt gate. Interrupt
	// gates clear IF on entry so handlers run with interrupts disabled.
	gateTypeInterrupt = 0x8E
)

var (
	idt [256]gateDescriptor

	// The following functions are mocked by tests.
	setGateFn = setGate
	loadIDTFn = loadIDT
	lidtFn    = lidt
)

// setGate points the IDT entry for num to the entry stub at handlerAddr.
func setGate(num InterruptNumber, handlerAddr uintptr) {
	idt[num].set(handlerAddr, kernelCodeSelector, gateTypeInterrupt)
}

// loadIDT activates the IDT.
func loadIDT() {
	var desc idtDescriptor
	desc.set(uint16(unsafe.Sizeof(idt)-1), uintptr(unsafe.Pointer(&idt[0])))
	lidtFn(uintptr(unsafe.Pointer(&desc)))
}

// lidt loads the IDT pseudo-descriptor stored at descAddr.
func lidt(descAddr uintptr)
