package console

import "unsafe"

const (
	// DefaultFramebuffer is the physical address of the color text mode
	// frame buffer.
	DefaultFramebuffer = uintptr(0xB8000)

	// DefaultWidth and DefaultHeight describe the 80x25 text mode set up
	// by the BIOS.
	DefaultWidth  = 80
	DefaultHeight = 25

	blankChar = byte(' ')
)

// blankCell is the frame buffer word used for cleared cells: a space drawn
// black on black.
var blankCell = cell(blankChar, MakeAttr(Black, Black))

// Ega is a color text console backed by a memory mapped frame buffer of
// 16-bit cells. The high byte of a cell holds the attribute and the low
// byte the character.
type Ega struct {
	width  uint16
	height uint16

	fb []uint16
}

// Init maps a width x height frame buffer located at fbPhysAddr.
func (cons *Ega) Init(width, height uint16, fbPhysAddr uintptr) {
	cons.width = width
	cons.height = height
	cons.fb = unsafe.Slice((*uint16)(unsafe.Pointer(fbPhysAddr)), int(width)*int(height))
}

// Dimensions returns the console width and height in characters.
func (cons *Ega) Dimensions() (uint16, uint16) {
	return cons.width, cons.height
}

// Clear blanks the cells of the given rectangle that fall inside the
// console.
func (cons *Ega) Clear(x, y, width, height uint16) {
	x, width = clipSpan(x, width, cons.width)
	y, height = clipSpan(y, height, cons.height)
	if width == 0 {
		return
	}

	for row := y; row < y+height; row++ {
		start := cons.offset(x, row)
		line := cons.fb[start : start+int(width)]
		for i := range line {
			line[i] = blankCell
		}
	}
}

// Scroll moves the console contents by lines rows in direction dir. The rows
// uncovered by the move keep their old contents; callers clear them if
// needed. Scrolling by more rows than the console holds is ignored.
func (cons *Ega) Scroll(dir ScrollDir, lines uint16) {
	if lines == 0 || lines > cons.height {
		return
	}

	shift := int(lines) * int(cons.width)

	switch dir {
	case Up:
		copy(cons.fb, cons.fb[shift:])
	case Down:
		copy(cons.fb[shift:], cons.fb[:len(cons.fb)-shift])
	}
}

// Write draws ch with attr at (x, y). Writes outside the console are
// dropped.
func (cons *Ega) Write(ch byte, attr Attr, x, y uint16) {
	if x >= cons.width || y >= cons.height {
		return
	}

	cons.fb[cons.offset(x, y)] = cell(ch, attr)
}

func (cons *Ega) offset(x, y uint16) int {
	return int(y)*int(cons.width) + int(x)
}

func cell(ch byte, attr Attr) uint16 {
	return uint16(attr)<<8 | uint16(ch)
}

// clipSpan clamps the span [start, start+length) to [0, limit).
func clipSpan(start, length, limit uint16) (uint16, uint16) {
	if start >= limit {
		return limit, 0
	}

	if room := limit - start; length > room {
		length = room
	}

	return start, length
}
