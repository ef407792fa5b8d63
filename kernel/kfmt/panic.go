package kfmt

import (
	"panix/kernel"
	"panix/kernel/cpu"
)

const panicRule = "-----------------------------------"

var (
	// cpuHaltFn is mocked by tests.
	cpuHaltFn = cpu.Halt

	errRuntimePanic = &kernel.Error{Module: "rt", Message: "unknown cause"}
)

// Panic reports e on the active sink and halts the CPU. It never returns.
//
// e may be a *kernel.Error, an error, a string or nil. If no sink is attached
// yet, the report stays in the early output buffer where a debugger can read
// it.
func Panic(e interface{}) {
	var err *kernel.Error

	switch t := e.(type) {
	case *kernel.Error:
		err = t
	case string:
		errRuntimePanic.Message = t
		err = errRuntimePanic
	case error:
		errRuntimePanic.Message = t.Error()
		err = errRuntimePanic
	}

	Printf("\n%s\n", panicRule)
	if err != nil {
		Logf(LevelFail, "[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	Printf("*** kernel panic: system halted ***\n%s\n", panicRule)

	cpuHaltFn()
}
