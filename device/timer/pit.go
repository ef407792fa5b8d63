// Package timer drives channel 0 of the 8253/8254 programmable interval timer
// (PIT). The timer fires IRQ0 at a fixed rate and the driver counts the ticks
// delivered through the gate package.
package timer

import (
	"io"
	"panix/device"
	"panix/kernel"
	"panix/kernel/cpu"
	"panix/kernel/gate"
	"panix/kernel/hal/multiboot"
	"panix/kernel/kfmt"
	"sync/atomic"
)

const (
	channel0DataPort = 0x40
	commandPort      = 0x43

	// cmdChannel0SquareWave selects channel 0, lobyte/hibyte access and
	// mode 3 (square wave generator).
	cmdChannel0SquareWave = 0x36

	// BaseFrequency is the input clock of the PIT in Hz.
	BaseFrequency = 1193182

	// MinFrequency is the lowest tick rate whose divisor fits in 16 bits.
	MinFrequency = 19

	// DefaultFrequency is the tick rate used when the boot command line
	// does not specify one.
	DefaultFrequency = 100

	// cmdLineFrequencyKey is the boot command line key that overrides the
	// tick rate, e.g. "timerHz=250".
	cmdLineFrequencyKey = "timerHz"
)

var (
	// The following functions are mocked by tests.
	portWriteByteFn    = cpu.PortWriteByte
	handleInterruptFn  = gate.HandleInterrupt
	waitForInterruptFn = cpu.WaitForInterrupt
	cmdLineValueFn     = multiboot.CmdLineValue

	errInvalidFrequency = &kernel.Error{Module: "timer", Message: "tick rate must be between 19 and 1193182 Hz"}

	// pit is the only timer instance; the IRQ0 handler updates it.
	pit PIT

	pitDriverInfo = device.DriverInfo{
		Order: device.DetectOrderLast,
		Probe: probeForPIT,
	}
)

// PIT is the driver for channel 0 of the programmable interval timer.
type PIT struct {
	// ticks is accessed atomically and must stay the first field so it is
	// 64-bit aligned on 386.
	ticks uint64

	frequency uint32
	divisor   uint16

	onTick func(ticks uint64)
}

// DriverName returns the name of this driver.
func (*PIT) DriverName() string {
	return "pit"
}

// DriverVersion returns the version of this driver.
func (*PIT) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit programs channel 0 to fire at the configured frequency and
// installs the IRQ0 handler.
func (p *PIT) DriverInit(w io.Writer) *kernel.Error {
	if !validFrequency(p.frequency) {
		return errInvalidFrequency
	}

	p.divisor = uint16(BaseFrequency / p.frequency)
	atomic.StoreUint64(&p.ticks, 0)

	portWriteByteFn(commandPort, cmdChannel0SquareWave)
	portWriteByteFn(channel0DataPort, uint8(p.divisor))
	portWriteByteFn(channel0DataPort, uint8(p.divisor>>8))

	handleInterruptFn(gate.IRQ(0), handleTick)

	kfmt.Fprintf(w, "channel 0 set to %d Hz (divisor %d)\n", p.frequency, p.divisor)
	return nil
}

// handleTick is the IRQ0 handler.
func handleTick(_ *gate.Registers) {
	ticks := atomic.AddUint64(&pit.ticks, 1)
	if pit.onTick != nil {
		pit.onTick(ticks)
	}
}

// Ticks returns the number of timer interrupts received since the driver was
// initialized.
func Ticks() uint64 {
	return atomic.LoadUint64(&pit.ticks)
}

// Frequency returns the tick rate in Hz or 0 if the timer has not been
// initialized.
func Frequency() uint32 {
	if pit.divisor == 0 {
		return 0
	}
	return pit.frequency
}

// SetTickHandler registers fn to be invoked from interrupt context on every
// timer tick with the updated tick count. Passing nil removes the handler.
func SetTickHandler(fn func(ticks uint64)) {
	pit.onTick = fn
}

// Sleep halts the CPU until at least ms milliseconds worth of ticks have
// elapsed. Interrupts are enabled while waiting. Sleep returns immediately if
// the timer has not been initialized.
func Sleep(ms uint32) {
	freq := Frequency()
	if freq == 0 || ms == 0 {
		return
	}

	// Round up so that short sleeps wait for at least one tick.
	wait := (uint64(ms)*uint64(freq) + 999) / 1000
	target := Ticks() + wait
	for Ticks() < target {
		waitForInterruptFn()
	}
}

// parseFrequency parses a decimal tick rate without allocating. It returns
// false if value is empty, contains non-digits or overflows a uint32.
func parseFrequency(value string) (uint32, bool) {
	if len(value) == 0 {
		return 0, false
	}

	var res uint64
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, false
		}

		res = res*10 + uint64(value[i]-'0')
		if res > 1<<32-1 {
			return 0, false
		}
	}

	return uint32(res), true
}

func validFrequency(hz uint32) bool {
	return hz >= MinFrequency && hz <= BaseFrequency
}

// probeForPIT returns the PIT driver configured with the rate requested on the
// boot command line. Rates that are malformed or outside the range that the
// divisor can express fall back to DefaultFrequency.
func probeForPIT() device.Driver {
	pit.frequency = DefaultFrequency
	if value, found := cmdLineValueFn(cmdLineFrequencyKey); found {
		if freq, ok := parseFrequency(value); ok && validFrequency(freq) {
			pit.frequency = freq
		}
	}

	return &pit
}

func init() {
	device.RegisterDriver(&pitDriverInfo)
}
