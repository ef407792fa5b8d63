// Package kmain contains the kernel entrypoint invoked by the rt0 code.
package kmain

import (
	"panix/device/timer"
	"panix/kernel/cpu"
	"panix/kernel/gate"
	"panix/kernel/hal"
	"panix/kernel/hal/multiboot"
	"panix/kernel/kfmt"
)

// Kmain is the only Go symbol that is visible (exported) from the rt0 initialization
// code. This function is invoked by the rt0 assembly code after setting up the GDT
// and setting up a minimal g0 struct that allows Go code using the 4K stack
// allocated by the assembly code.
//
// The rt0 code passes the address of the multiboot info payload provided by the
// bootloader.
//
// Kmain never returns: once interrupts are enabled the CPU idles and only runs
// interrupt handlers.
//
//go:noinline
func Kmain(multibootInfoPtr uintptr) {
	multiboot.SetInfoPtr(multibootInfoPtr)

	hal.InitTerminal()
	kfmt.Logf(kfmt.LevelInfo, "[kmain] starting\n")

	gate.Install()
	hal.BindIndicator()
	hal.DetectHardware()

	gate.EnableInterrupts()
	if hz := timer.Frequency(); hz != 0 {
		timer.Sleep(1000)
		kfmt.Logf(kfmt.LevelOkay, "[kmain] timer ticking at %d Hz (%d ticks)\n", hz, timer.Ticks())
	} else {
		kfmt.Logf(kfmt.LevelWarn, "[kmain] no timer available\n")
	}

	for {
		cpu.WaitForInterrupt()
	}
}
