// Package hal brings up the text terminal used for kernel output and probes
// the registered device drivers.
package hal

import (
	"panix/device"
	"panix/kernel/driver/tty"
	"panix/kernel/driver/video/console"
	"panix/kernel/gate"
	"panix/kernel/hal/multiboot"
	"panix/kernel/kfmt"
	"sort"
)

// cmdLineNoIndicator disables the interrupt status cell when present on the
// boot command line.
const cmdLineNoIndicator = "noindicator"

var (
	egaConsole = &console.Ega{}

	// ActiveTerminal points to the currently active terminal.
	ActiveTerminal = &tty.Vt{}

	// The following functions are mocked by tests.
	getFramebufferInfoFn = multiboot.GetFramebufferInfo
	cmdLineValueFn       = multiboot.CmdLineValue
	setIndicatorFn       = gate.SetIndicator

	prefix prefixBuffer
)

// InitTerminal provides a basic terminal to allow the kernel to emit some
// output till everything is properly setup.
func InitTerminal() {
	egaConsole.Init(terminalGeometry())
	ActiveTerminal.AttachTo(egaConsole)
	ActiveTerminal.Clear()
	kfmt.SetOutputSink(ActiveTerminal)
}

// terminalGeometry returns the console dimensions and frame buffer address
// reported by the boot loader. If the framebuffer tag is missing or does not
// describe a text mode, the standard 80x25 color text mode is assumed.
func terminalGeometry() (width, height uint16, fbPhysAddr uintptr) {
	fbInfo := getFramebufferInfoFn()
	if fbInfo == nil || fbInfo.Type != multiboot.FramebufferTypeEGA {
		return console.DefaultWidth, console.DefaultHeight, console.DefaultFramebuffer
	}

	return uint16(fbInfo.Width), uint16(fbInfo.Height), uintptr(fbInfo.PhysAddr)
}

// BindIndicator connects the IRQ dispatcher state to the status cell in the
// top-right corner of the console:
//   - red while the interrupt controller is being acknowledged
//   - yellow while a handler runs
//   - green when idle
func BindIndicator() {
	if _, disabled := cmdLineValueFn(cmdLineNoIndicator); disabled {
		kfmt.Logf(kfmt.LevelWarn, "[hal] interrupt indicator disabled\n")
		return
	}

	updateIndicator(gate.IndicatorIdle)
	setIndicatorFn(updateIndicator)
}

// updateIndicator runs in interrupt context.
func updateIndicator(state gate.IndicatorState) {
	switch state {
	case gate.IndicatorAcknowledging:
		egaConsole.SetIndicator(console.Red)
	case gate.IndicatorDispatching:
		egaConsole.SetIndicator(console.LightBrown)
	default:
		egaConsole.SetIndicator(console.Green)
	}
}

// DetectHardware probes for hardware devices and initializes the appropriate
// drivers.
func DetectHardware() {
	// Get driver list and sort by detection priority
	drivers := device.DriverList()
	sort.Sort(drivers)

	probe(drivers)
}

// probe executes the probe function for each driver and initializes the
// drivers for the hardware that was detected. Driver output is tagged INFO
// and prefixed with "[hal] name(major.minor.patch): "; the outcome of each
// init is tagged FAIL or OK.
func probe(driverInfoList device.DriverInfoList) {
	var w = kfmt.PrefixWriter{Sink: kfmt.GetOutputSink()}

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		prefix.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&prefix, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = prefix.Bytes()

		w.Level = kfmt.LevelInfo
		err := drv.DriverInit(&w)
		if err != nil {
			w.Level = kfmt.LevelFail
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		w.Level = kfmt.LevelOkay
		kfmt.Fprintf(&w, "initialized\n")
	}
}
