//go:build 386 || amd64

// Package pic drives the legacy 8259A master/slave interrupt controller pair.
//
// Out of reset both controllers deliver IRQ0-15 on vectors that overlap the
// CPU exception range, so the pair has to be remapped before interrupts are
// enabled. After every serviced IRQ the controller that raised it must be sent
// an end-of-interrupt (EOI) command or that line stays blocked.
package pic

import "panix/kernel/cpu"

// I/O ports of the two controllers.
const (
	MasterCommandPort uint16 = 0x20
	MasterDataPort    uint16 = 0x21
	SlaveCommandPort  uint16 = 0xA0
	SlaveDataPort     uint16 = 0xA1
)

// Vector offsets used by the standard remap: IRQ0-7 land on vectors 32-39
// and IRQ8-15 on vectors 40-47.
const (
	MasterOffset uint8 = 0x20
	SlaveOffset  uint8 = 0x28
)

// Initialization and operation command words.
const (
	// icw1Init starts the init sequence and announces that an ICW4 follows.
	icw1Init uint8 = 0x11

	// icw3MasterCascade tells the master that a slave hangs off IRQ2.
	icw3MasterCascade uint8 = 0x04

	// icw3SlaveIdentity tells the slave its cascade identity.
	icw3SlaveIdentity uint8 = 0x02

	// icw4Mode8086 selects 8086/88 mode.
	icw4Mode8086 uint8 = 0x01

	// unmaskAll clears the interrupt mask register.
	unmaskAll uint8 = 0x00

	// ocw2EOI is the non-specific end-of-interrupt command.
	ocw2EOI uint8 = 0x20
)

// Controller drives a master/slave 8259A pair through a byte-wide port
// writer.
type Controller struct {
	write func(port uint16, val uint8)

	masterOffset uint8
	slaveOffset  uint8
}

// Legacy is the controller pair wired to the real I/O ports.
var Legacy = &Controller{
	write:        cpu.PortWriteByte,
	masterOffset: MasterOffset,
	slaveOffset:  SlaveOffset,
}

// New returns a Controller that performs its port writes through write. The
// controller assumes the standard offsets until Remap is called.
func New(write func(port uint16, val uint8)) *Controller {
	return &Controller{
		write:        write,
		masterOffset: MasterOffset,
		slaveOffset:  SlaveOffset,
	}
}

// Remap reprograms both controllers so that IRQ0-7 are delivered starting at
// masterOffset and IRQ8-15 starting at slaveOffset. All interrupt lines are
// unmasked once the sequence completes. The writes are interleaved between
// the two controllers in the exact order the 8259A init protocol requires.
func (c *Controller) Remap(masterOffset, slaveOffset uint8) {
	// ICW1
	c.write(MasterCommandPort, icw1Init)
	c.write(SlaveCommandPort, icw1Init)

	// ICW2
	c.write(MasterDataPort, masterOffset)
	c.write(SlaveDataPort, slaveOffset)

	// ICW3
	c.write(MasterDataPort, icw3MasterCascade)
	c.write(SlaveDataPort, icw3SlaveIdentity)

	// ICW4
	c.write(MasterDataPort, icw4Mode8086)
	c.write(SlaveDataPort, icw4Mode8086)

	// OCW1
	c.write(MasterDataPort, unmaskAll)
	c.write(SlaveDataPort, unmaskAll)

	c.masterOffset, c.slaveOffset = masterOffset, slaveOffset
}

// Offsets returns the vector offsets the controllers are programmed with.
func (c *Controller) Offsets() (master, slave uint8) {
	return c.masterOffset, c.slaveOffset
}

// SendEOI acknowledges the IRQ that was delivered on vector. Vectors at or
// above the slave offset were raised through the slave, which must be
// acknowledged before the master; the master is always acknowledged since
// the slave cascades through its IRQ2 line.
func (c *Controller) SendEOI(vector uint8) {
	if vector >= c.slaveOffset {
		c.write(SlaveCommandPort, ocw2EOI)
	}

	c.write(MasterCommandPort, ocw2EOI)
}
