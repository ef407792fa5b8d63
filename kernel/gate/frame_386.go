package gate

import (
	"io"
	"panix/kernel/kfmt"
)

// Registers contains a snapshot of all register values when an exception or
// interrupt occurs.
//
// The field order mirrors the layout built by the exception/IRQ save routine
// in entries_386.s: the structure is overlaid on the interrupt stack, so any
// change here must be matched there.
type Registers struct {
	DS uint32

	// Pushed by PUSHAL.
	EDI        uint32
	ESI        uint32
	EBP        uint32
	ESPIgnored uint32
	EBX        uint32
	EDX        uint32
	ECX        uint32
	EAX        uint32

	// Vector is the interrupt slot that fired.
	Vector uint32

	// ErrorCode is the code pushed by the CPU for exceptions that
	// provide one and 0 for everything else.
	ErrorCode uint32

	// Pushed by the CPU. ESP and SS are only valid if the interrupt
	// caused a privilege level change.
	EIP    uint32
	CS     uint32
	EFlags uint32
	ESP    uint32
	SS     uint32
}

// InterruptNumber returns the slot that raised this frame.
func (r *Registers) InterruptNumber() InterruptNumber {
	return InterruptNumber(r.Vector)
}

// Code returns the exception error code.
func (r *Registers) Code() uint64 {
	return uint64(r.ErrorCode)
}

// DumpTo outputs the register contents to w.
func (r *Registers) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "EAX = %8x EBX = %8x\n", r.EAX, r.EBX)
	kfmt.Fprintf(w, "ECX = %8x EDX = %8x\n", r.ECX, r.EDX)
	kfmt.Fprintf(w, "ESI = %8x EDI = %8x\n", r.ESI, r.EDI)
	kfmt.Fprintf(w, "EBP = %8x ESP = %8x\n", r.EBP, r.ESP)
	kfmt.Fprintf(w, "\n")
	kfmt.Fprintf(w, "EIP = %8x EFL = %8x\n", r.EIP, r.EFlags)
	kfmt.Fprintf(w, "CS  = %4x DS  = %4x SS  = %4x\n", r.CS, r.DS, r.SS)
	kfmt.Fprintf(w, "INT = %8x ERR = %8x\n", r.Vector, r.ErrorCode)
}
