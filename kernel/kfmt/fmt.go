// Package kfmt formats kernel log output without allocating. Output written
// before a terminal is attached is kept in a small ring buffer and replayed
// once SetOutputSink is called.
package kfmt

import (
	"io"
	"unsafe"
)

const (
	// maxBufSize bounds the width of a formatted number, sign included.
	maxBufSize = 32

	// maxWidth caps the parsed width of a verb.
	maxWidth = 1 << 10

	digits = "0123456789abcdef"
)

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	// numBuf is filled right to left by fmtInt. The extra byte holds the
	// sign of a zero padded number.
	numBuf [maxBufSize + 1]byte

	// oneByte passes single characters to doWrite. Slicing a string would
	// allocate.
	oneByte [1]byte

	// earlyPrintBuffer keeps the output produced before a sink is attached.
	earlyPrintBuffer ringBuffer

	// outputSink receives Printf output. While nil, output goes to
	// earlyPrintBuffer.
	outputSink io.Writer

	// outputColor is set when outputSink can change its text color.
	outputColor ColorWriter
)

// SetOutputSink directs Printf and Logf output to w and replays any output
// buffered while no sink was attached. Passing nil detaches the current sink.
func SetOutputSink(w io.Writer) {
	outputSink = w
	outputColor = nil
	if w == nil {
		return
	}

	outputColor, _ = w.(ColorWriter)
	earlyPrintBuffer.WriteTo(w)

	if dropped := earlyPrintBuffer.dropped; dropped != 0 {
		earlyPrintBuffer.dropped = 0
		Logf(LevelWarn, "[kfmt] dropped %d bytes of early output\n", dropped)
	}
}

// GetOutputSink returns the writer used by Printf. Before a sink has been
// attached, the early ring buffer is returned so callers such as register
// dumps still have somewhere to write to.
func GetOutputSink() io.Writer {
	if outputSink == nil {
		return &earlyPrintBuffer
	}

	return outputSink
}

// Printf writes formatted output to the active sink. It never allocates so it
// can be used before the Go allocator is available and from trap handlers.
//
// The supported verbs are:
//
//	%s string or []byte
//	%d base 10 integer
//	%o base 8 integer
//	%x base 16 integer with lower-case digits
//	%t bool
//	%% a literal percent sign
//
// An optional decimal width may precede the verb. Strings and base 10
// integers are left-padded with spaces, base 8 and base 16 integers with
// zeroes. Integer widths are capped at maxBufSize-1.
//
// Arguments must be one of the built-in string, bool or integer types.
// Printf does not look for fmt.Stringer and has no %p as both need the
// reflect package, whose use makes the compiler box arguments on the heap.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves like Printf but writes to w. A nil w writes to the early
// output buffer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var argIndex int

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			writeByte(w, format[i])
			continue
		}

		width := 0
		for i++; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
			if width < maxWidth {
				width = width*10 + int(format[i]-'0')
			}
		}

		if i == len(format) {
			doWrite(w, errNoVerb)
			break
		}

		switch verb := format[i]; verb {
		case '%':
			writeByte(w, '%')
		case 'd', 'o', 'x', 's', 't':
			if argIndex == len(args) {
				doWrite(w, errMissingArg)
				continue
			}

			fmtArg(w, verb, args[argIndex], width)
			argIndex++
		default:
			doWrite(w, errNoVerb)
		}
	}

	for ; argIndex < len(args); argIndex++ {
		doWrite(w, errExtraArg)
	}
}

func fmtArg(w io.Writer, verb byte, arg interface{}, width int) {
	switch verb {
	case 'd':
		fmtInt(w, arg, 10, width)
	case 'o':
		fmtInt(w, arg, 8, width)
	case 'x':
		fmtInt(w, arg, 16, width)
	case 's':
		fmtString(w, arg, width)
	case 't':
		fmtBool(w, arg)
	}
}

func fmtBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	switch {
	case !ok:
		doWrite(w, errWrongArgType)
	case b:
		doWrite(w, trueValue)
	default:
		doWrite(w, falseValue)
	}
}

func fmtString(w io.Writer, v interface{}, width int) {
	switch s := v.(type) {
	case string:
		writeRepeat(w, ' ', width-len(s))
		writeString(w, s)
	case []byte:
		writeRepeat(w, ' ', width-len(s))
		doWrite(w, s)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtInt writes v in the given base. Base 10 values are space padded with the
// sign next to the first digit. Other bases are zero padded and the sign
// precedes the padding.
func fmtInt(w io.Writer, v interface{}, base uint64, width int) {
	mag, neg, ok := toMagnitude(v)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	if width > maxBufSize-1 {
		width = maxBufSize - 1
	}

	end := len(numBuf)
	pos := end
	for {
		pos--
		numBuf[pos] = digits[mag%base]
		if mag /= base; mag == 0 {
			break
		}
	}

	if base == 10 {
		if neg {
			pos--
			numBuf[pos] = '-'
		}
		for ; end-pos < width; pos-- {
			numBuf[pos-1] = ' '
		}
	} else {
		for ; end-pos < width; pos-- {
			numBuf[pos-1] = '0'
		}
		if neg {
			pos--
			numBuf[pos] = '-'
		}
	}

	doWrite(w, numBuf[pos:end])
}

// toMagnitude returns the absolute value of an integer argument and whether
// it was negative.
func toMagnitude(v interface{}) (mag uint64, neg, ok bool) {
	var s int64

	switch n := v.(type) {
	case uint8:
		return uint64(n), false, true
	case uint16:
		return uint64(n), false, true
	case uint32:
		return uint64(n), false, true
	case uint64:
		return n, false, true
	case uint:
		return uint64(n), false, true
	case uintptr:
		return uint64(n), false, true
	case int8:
		s = int64(n)
	case int16:
		s = int64(n)
	case int32:
		s = int64(n)
	case int64:
		s = n
	case int:
		s = int64(n)
	default:
		return 0, false, false
	}

	if s < 0 {
		return uint64(-s), true, true
	}
	return uint64(s), false, true
}

func writeByte(w io.Writer, b byte) {
	oneByte[0] = b
	doWrite(w, oneByte[:])
}

func writeString(w io.Writer, s string) {
	for i := 0; i < len(s); i++ {
		writeByte(w, s[i])
	}
}

func writeRepeat(w io.Writer, b byte, count int) {
	for ; count > 0; count-- {
		writeByte(w, b)
	}
}

// doWrite hides p from escape analysis. The compiler cannot see through the
// io.Writer call and would otherwise move every buffer passed here to the
// heap, which faults before the allocator is up.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w == nil {
		earlyPrintBuffer.Write(p)
		return
	}

	w.Write(p)
}

// noEscape is the runtime's noescape helper.
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
