package gate

// gateDescriptor is a 16-byte long mode IDT entry.
type gateDescriptor struct {
	offsetLow  uint16
	selector   uint16
	ist        uint8
	typeAttr   uint8
	offsetMid  uint16
	offsetHigh uint32
	reserved   uint32
}

func (d *gateDescriptor) set(handlerAddr uintptr, selector uint16, typeAttr uint8) {
	d.offsetLow = uint16(handlerAddr)
	d.offsetMid = uint16(handlerAddr >> 16)
	d.offsetHigh = uint32(handlerAddr >> 32)
	d.selector = selector
	d.typeAttr = typeAttr
	d.ist = 0
	d.reserved = 0
}

// idtDescriptor is the packed 10-byte operand of LIDT: a 16-bit limit
// followed by the 64-bit linear base address.
type idtDescriptor [10]byte

func (d *idtDescriptor) set(limit uint16, base uintptr) {
	d[0], d[1] = byte(limit), byte(limit>>8)
	for i := 0; i < 8; i++ {
		d[2+i] = byte(base >> (8 * uint(i)))
	}
}
