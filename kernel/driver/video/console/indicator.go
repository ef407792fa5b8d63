package console

// SetIndicator paints the top-right cell as a solid block of color. It runs
// in interrupt context on every IRQ, so it only stores one frame buffer word.
func (cons *Ega) SetIndicator(color Attr) {
	if cons.width == 0 || cons.height == 0 {
		return
	}

	cons.fb[cons.offset(cons.width-1, 0)] = cell(blankChar, MakeAttr(color, color))
}
