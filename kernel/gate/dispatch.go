package gate

import (
	"panix/kernel"
	"panix/kernel/kfmt"
	"panix/kernel/pic"
)

// IndicatorState describes what the IRQ dispatcher is currently doing.
type IndicatorState uint8

// The states reported to the indicator callback, in the order they are
// entered while an IRQ is serviced.
const (
	IndicatorIdle IndicatorState = iota
	IndicatorAcknowledging
	IndicatorDispatching
)

// interruptController is implemented by the PIC driver.
type interruptController interface {
	Remap(masterOffset, slaveOffset uint8)
	SendEOI(vector uint8)
}

var (
	picController interruptController = pic.Legacy

	// exceptionPanicFn receives every exception that reaches the
	// dispatcher; it is not expected to return.
	exceptionPanicFn = fatalException

	indicatorFn = noopIndicator

	// kernelPanicFn is mocked by tests.
	kernelPanicFn = kfmt.Panic

	errUnhandledException = &kernel.Error{Module: "gate", Message: "unhandled CPU exception"}
)

// SetIndicator installs fn as the observer of the IRQ dispatcher state. The
// observer runs in interrupt context and must not block. Passing nil
// removes the current observer.
func SetIndicator(fn func(IndicatorState)) {
	if fn == nil {
		fn = noopIndicator
	}

	indicatorFn = fn
}

func noopIndicator(IndicatorState) {}

// dispatchException is called by the exception save routine with the frame
// of a CPU exception. Exceptions are fatal; the PIC is never touched and the
// handler registry is not consulted.
//
//go:nosplit
func dispatchException(regs *Registers) {
	exceptionPanicFn(regs)
}

// dispatchIRQ is called by the IRQ save routine with the frame of a hardware
// interrupt. The PIC is acknowledged before the registered handler runs so
// that a slow handler does not hold back the other lines. IRQs without a
// handler are acknowledged and dropped.
//
//go:nosplit
func dispatchIRQ(regs *Registers) {
	num := regs.InterruptNumber()

	indicatorFn(IndicatorAcknowledging)
	picController.SendEOI(uint8(num))

	if handler := handlers.Lookup(num); handler != nil {
		indicatorFn(IndicatorDispatching)
		handler(regs)
	}

	indicatorFn(IndicatorIdle)
}

// fatalException reports an exception and its register snapshot to the
// console and halts the CPU.
func fatalException(regs *Registers) {
	num := regs.InterruptNumber()

	kfmt.Printf("\n")
	kfmt.Logf(kfmt.LevelFail, "[gate] unhandled exception %d (%s), error code 0x%x\n", uint8(num), num.Name(), regs.Code())
	kfmt.Printf("Registers:\n")
	regs.DumpTo(kfmt.GetOutputSink())

	kernelPanicFn(errUnhandledException)
}
