//go:build 386 || amd64

// Package cpu exposes the privileged x86 instructions used by the kernel.
// All functions are implemented in assembly (cpu_$GOARCH.s).
package cpu

// FlagIF is the interrupt-enable bit of the (E|R)FLAGS register.
const FlagIF = 1 << 9

// EnableInterrupts enables interrupt handling (STI).
func EnableInterrupts()

// DisableInterrupts disables interrupt handling (CLI).
func DisableInterrupts()

// Halt stops instruction execution. Interrupts are disabled before halting
// so Halt never returns.
func Halt()

// WaitForInterrupt enables interrupts and halts until the next one is
// delivered (STI; HLT).
func WaitForInterrupt()

// Flags returns the current value of the (E|R)FLAGS register.
func Flags() uintptr

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8
