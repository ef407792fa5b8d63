package gate

import (
	"io"
	"panix/kernel/kfmt"
)

// Registers contains a snapshot of all register values when an exception or
// interrupt occurs.
//
// The field order mirrors the layout built by the exception/IRQ save routine
// in entries_amd64.s: the structure is overlaid on the interrupt stack, so any
// change here must be matched there.
type Registers struct {
	RAX uint64
	RBX uint64
	RCX uint64
	RDX uint64
	RSI uint64
	RDI uint64
	RSP uint64
	RBP uint64
	R8  uint64
	R9  uint64
	R10 uint64
	R11 uint64
	R12 uint64
	R13 uint64
	R14 uint64
	R15 uint64

	RIP uint64
	CS  uint64
	DS  uint64
	SS  uint64
	ES  uint64
	FS  uint64
	GS  uint64

	RFlags uint64
	CR0    uint64
	CR2    uint64
	CR3    uint64
	CR4    uint64
	CR8    uint64

	// Vector is the interrupt slot that fired.
	Vector uint64

	// ErrorCode is the code pushed by the CPU for exceptions that
	// provide one and 0 for everything else.
	ErrorCode uint64
}

// InterruptNumber returns the slot that raised this frame.
func (r *Registers) InterruptNumber() InterruptNumber {
	return InterruptNumber(r.Vector)
}

// Code returns the exception error code.
func (r *Registers) Code() uint64 {
	return r.ErrorCode
}

// DumpTo outputs the register contents to w.
func (r *Registers) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "RAX = %16x RBX = %16x\n", r.RAX, r.RBX)
	kfmt.Fprintf(w, "RCX = %16x RDX = %16x\n", r.RCX, r.RDX)
	kfmt.Fprintf(w, "RSI = %16x RDI = %16x\n", r.RSI, r.RDI)
	kfmt.Fprintf(w, "RBP = %16x RSP = %16x\n", r.RBP, r.RSP)
	kfmt.Fprintf(w, "R8  = %16x R9  = %16x\n", r.R8, r.R9)
	kfmt.Fprintf(w, "R10 = %16x R11 = %16x\n", r.R10, r.R11)
	kfmt.Fprintf(w, "R12 = %16x R13 = %16x\n", r.R12, r.R13)
	kfmt.Fprintf(w, "R14 = %16x R15 = %16x\n", r.R14, r.R15)
	kfmt.Fprintf(w, "\n")
	kfmt.Fprintf(w, "RIP = %16x RFL = %16x\n", r.RIP, r.RFlags)
	kfmt.Fprintf(w, "CS  = %4x DS  = %4x SS  = %4x\n", r.CS, r.DS, r.SS)
	kfmt.Fprintf(w, "ES  = %4x FS  = %4x GS  = %4x\n", r.ES, r.FS, r.GS)
	kfmt.Fprintf(w, "CR0 = %16x CR2 = %16x\n", r.CR0, r.CR2)
	kfmt.Fprintf(w, "CR3 = %16x CR4 = %16x\n", r.CR3, r.CR4)
	kfmt.Fprintf(w, "CR8 = %16x\n", r.CR8)
	kfmt.Fprintf(w, "INT = %16x ERR = %16x\n", r.Vector, r.ErrorCode)
}
