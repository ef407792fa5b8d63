package gate

import (
	"panix/kernel/cpu"
	"panix/kernel/kfmt"
)

var (
	// The following functions are mocked by tests.
	enableInterruptsFn  = cpu.EnableInterrupts
	disableInterruptsFn = cpu.DisableInterrupts
	cpuFlagsFn          = cpu.Flags
)

// DisableInterrupts clears the CPU interrupt flag. Calls do not nest: a
// single EnableInterrupts re-enables delivery regardless of how many times
// DisableInterrupts was called.
func DisableInterrupts() {
	kfmt.Logf(kfmt.LevelWarn, "[gate] disabling interrupts\n")
	disableInterruptsFn()
}

// EnableInterrupts sets the CPU interrupt flag. It must not be called
// before Install has loaded the vector table.
func EnableInterrupts() {
	kfmt.Logf(kfmt.LevelWarn, "[gate] enabling interrupts\n")
	enableInterruptsFn()
}

// InterruptsEnabled reports whether the CPU interrupt flag is set.
func InterruptsEnabled() bool {
	return cpuFlagsFn()&cpu.FlagIF != 0
}
