// Package gate routes CPU exceptions and legacy PIC interrupts from their
// hardware vectors to kernel handlers.
//
// Vectors 0-31 are reserved for CPU exceptions and always end in a kernel
// panic. Vectors 32-47 carry IRQ0-15 once the PIC pair has been remapped by
// Install; each one is acknowledged at the PIC and then routed to the handler
// registered for it via HandleInterrupt (if any).
package gate

import "panix/kernel/pic"

// InterruptNumber describes an x86 interrupt/exception/trap slot. Being a
// uint8, every value is a valid slot in the 256-entry vector table.
type InterruptNumber uint8

const (
	// ExceptionCount is the number of vectors reserved for CPU exceptions.
	ExceptionCount = 32

	// IRQCount is the number of hardware IRQ lines served by the PIC pair.
	IRQCount = 16

	// IRQBase is the vector that IRQ0 is delivered on after remapping.
	IRQBase = InterruptNumber(pic.MasterOffset)
)

const (
	// DivideByZero occurs when dividing any number by 0 using the DIV or
	// IDIV instruction.
	DivideByZero = InterruptNumber(0)

	// Debug is raised by debug-register breakpoints and single stepping.
	Debug = InterruptNumber(1)

	// NMI (non-maskable-interrupt) is a hardware interrupt that indicates
	// issues with RAM or unrecoverable hardware problems. It may also be
	// raised by the CPU when a watchdog timer is enabled.
	NMI = InterruptNumber(2)

	// Breakpoint is raised by the INT3 instruction.
	Breakpoint = InterruptNumber(3)

	// Overflow occurs when the INTO instruction is executed while the
	// overflow flag is set.
	Overflow = InterruptNumber(4)

	// BoundRangeExceeded occurs when the BOUND instruction is invoked with
	// an index out of range.
	BoundRangeExceeded = InterruptNumber(5)

	// InvalidOpcode occurs when the CPU attempts to execute an invalid or
	// undefined instruction opcode.
	InvalidOpcode = InterruptNumber(6)

	// DeviceNotAvailable occurs when the CPU attempts to execute an
	// FPU/MMX/SSE instruction while no FPU is available or while
	// FPU/MMX/SSE support has been disabled by manipulating the CR0
	// register.
	DeviceNotAvailable = InterruptNumber(7)

	// DoubleFault occurs when an exception is raised while the CPU is
	// trying to invoke the handler for a prior exception.
	DoubleFault = InterruptNumber(8)

	// CoprocessorSegmentOverrun is only raised by pre-486 CPUs.
	CoprocessorSegmentOverrun = InterruptNumber(9)

	// InvalidTSS occurs when the TSS points to an invalid task segment
	// selector.
	InvalidTSS = InterruptNumber(10)

	// SegmentNotPresent occurs when the CPU attempts to load a segment or
	// gate whose present bit is clear.
	SegmentNotPresent = InterruptNumber(11)

	// StackSegmentFault occurs when attempting to push/pop from a
	// non-canonical stack address or when the stack base/limit (set in
	// GDT) checks fail.
	StackSegmentFault = InterruptNumber(12)

	// GPFException occurs when a general protection fault occurs.
	GPFException = InterruptNumber(13)

	// PageFaultException occurs when a page directory table (PDT) or one
	// of its entries is not present or when a privilege and/or RW
	// protection check fails.
	PageFaultException = InterruptNumber(14)

	// FloatingPointException occurs while invoking an FP instruction while:
	//  - CR0.NE = 1 OR
	//  - an unmasked FP exception is pending
	FloatingPointException = InterruptNumber(16)

	// AlignmentCheck occurs when alignment checks are enabled and an
	// unaligned memory access is performed.
	AlignmentCheck = InterruptNumber(17)

	// MachineCheck occurs when the CPU detects internal errors such as
	// memory-, bus- or cache-related errors.
	MachineCheck = InterruptNumber(18)

	// SIMDFloatingPointException occurs when an unmasked SSE exception
	// occurs while CR4.OSXMMEXCPT is set to 1. If the OSXMMEXCPT bit is
	// not set, SIMD FP exceptions cause InvalidOpcode exceptions instead.
	SIMDFloatingPointException = InterruptNumber(19)

	// VirtualizationException is raised on EPT violations.
	VirtualizationException = InterruptNumber(20)

	// ControlProtectionException is raised by control-flow enforcement.
	ControlProtectionException = InterruptNumber(21)

	// HypervisorInjectionException is injected by a hypervisor.
	HypervisorInjectionException = InterruptNumber(28)

	// VMMCommunicationException is raised inside SEV-ES guests.
	VMMCommunicationException = InterruptNumber(29)

	// SecurityException is raised by SVM security events.
	SecurityException = InterruptNumber(30)
)

var exceptionNames = [ExceptionCount]string{
	"divide error",
	"debug",
	"non-maskable interrupt",
	"breakpoint",
	"overflow",
	"bound range exceeded",
	"invalid opcode",
	"device not available",
	"double fault",
	"coprocessor segment overrun",
	"invalid TSS",
	"segment not present",
	"stack-segment fault",
	"general protection fault",
	"page fault",
	"reserved",
	"x87 floating-point exception",
	"alignment check",
	"machine check",
	"SIMD floating-point exception",
	"virtualization exception",
	"control protection exception",
	"reserved",
	"reserved",
	"reserved",
	"reserved",
	"reserved",
	"reserved",
	"hypervisor injection exception",
	"VMM communication exception",
	"security exception",
	"reserved",
}

// IRQ returns the vector that the given PIC line (0-15) is delivered on.
func IRQ(line uint8) InterruptNumber {
	return IRQBase + InterruptNumber(line)
}

// IsException returns true if num belongs to the CPU exception range.
func (num InterruptNumber) IsException() bool {
	return num < ExceptionCount
}

// Name returns a human readable description of the interrupt slot.
func (num InterruptNumber) Name() string {
	switch {
	case num.IsException():
		return exceptionNames[num]
	case num < IRQBase+IRQCount:
		return "hardware IRQ"
	default:
		return "unassigned"
	}
}
