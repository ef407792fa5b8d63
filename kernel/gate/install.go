package gate

import (
	"panix/kernel"
	"panix/kernel/kfmt"
	"panix/kernel/pic"
)

var (
	installed bool

	// entryStubsFn is mocked by tests.
	entryStubsFn = entryStubTable

	errGateAlreadyInstalled = &kernel.Error{Module: "gate", Message: "interrupt vector table already installed"}
)

// Install points the exception vectors (0-31) to their entry stubs, remaps
// the PIC pair so that IRQ0-15 land on vectors 32-47, points those vectors
// to the IRQ entry stubs and finally loads the IDT.
//
// Install must be called exactly once, before interrupts are enabled.
func Install() {
	if installed {
		kernelPanicFn(errGateAlreadyInstalled)
		return
	}

	stubs := entryStubsFn()

	kfmt.Logf(kfmt.LevelInfo, "[gate] installing exception gates\n")
	for num := 0; num < ExceptionCount; num++ {
		setGateFn(InterruptNumber(num), stubs[num])
	}

	kfmt.Logf(kfmt.LevelInfo, "[gate] remapping PIC to vectors 0x%x-0x%x\n", pic.MasterOffset, pic.SlaveOffset+7)
	picController.Remap(pic.MasterOffset, pic.SlaveOffset)

	kfmt.Logf(kfmt.LevelInfo, "[gate] installing IRQ gates\n")
	for line := 0; line < IRQCount; line++ {
		setGateFn(IRQ(uint8(line)), stubs[ExceptionCount+line])
	}

	loadIDTFn()
	installed = true
	kfmt.Logf(kfmt.LevelOkay, "[gate] loaded IDT\n")
}
