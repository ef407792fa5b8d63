package gate

// gateDescriptor is an 8-byte protected mode IDT entry.
type gateDescriptor struct {
	offsetLow  uint16
	selector   uint16
	zero       uint8
	typeAttr   uint8
	offsetHigh uint16
}

func (d *gateDescriptor) set(handlerAddr uintptr, selector uint16, typeAttr uint8) {
	d.offsetLow = uint16(handlerAddr)
	d.offsetHigh = uint16(handlerAddr >> 16)
	d.selector = selector
	d.typeAttr = typeAttr
	d.zero = 0
}

// idtDescriptor is the packed 6-byte operand of LIDT: a 16-bit limit
// followed by the 32-bit linear base address.
type idtDescriptor [6]byte

func (d *idtDescriptor) set(limit uint16, base uintptr) {
	d[0], d[1] = byte(limit), byte(limit>>8)
	for i := 0; i < 4; i++ {
		d[2+i] = byte(base >> (8 * uint(i)))
	}
}
