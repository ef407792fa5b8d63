package kfmt

import (
	"io"
	"panix/kernel/driver/video/console"
)

// Level is the severity tag written in front of a log line.
type Level uint8

// The supported levels. LevelNone writes no tag.
const (
	LevelNone Level = iota
	LevelInfo
	LevelWarn
	LevelFail
	LevelOkay
	levelCount
)

type levelTag struct {
	text  []byte
	color console.Attr
}

var (
	levelTags = [levelCount]levelTag{
		LevelInfo: {[]byte(" INFO "), console.LightGrey},
		LevelWarn: {[]byte(" WARN "), console.LightBrown},
		LevelFail: {[]byte(" FAIL "), console.Red},
		LevelOkay: {[]byte("  OK  "), console.LightGreen},
	}

	tagOpen  = []byte("[")
	tagClose = []byte("] ")
)

// ColorWriter is implemented by sinks that can change the foreground color of
// the text written after the call.
type ColorWriter interface {
	io.Writer

	// SetForeground switches the text color to fg and returns the
	// previous one.
	SetForeground(fg console.Attr) console.Attr
}

// Logf writes a level tag followed by the Printf formatted message to the
// active sink. When the sink is a ColorWriter the tag text is colored.
func Logf(lvl Level, format string, args ...interface{}) {
	writeLevelTag(outputSink, lvl)
	Fprintf(outputSink, format, args...)
}

// writeLevelTag writes "[ TAG ] " to w.
func writeLevelTag(w io.Writer, lvl Level) {
	if lvl == LevelNone || lvl >= levelCount {
		return
	}

	tag := &levelTags[lvl]
	doWrite(w, tagOpen)

	if cw := colorWriterFor(w); cw != nil {
		prev := cw.SetForeground(tag.color)
		doWrite(w, tag.text)
		cw.SetForeground(prev)
	} else {
		doWrite(w, tag.text)
	}

	doWrite(w, tagClose)
}

// colorWriterFor returns the ColorWriter behind w. Only the active sink is
// checked; its ColorWriter is resolved once by SetOutputSink.
func colorWriterFor(w io.Writer) ColorWriter {
	if w == nil || outputColor == nil || w != outputSink {
		return nil
	}

	return outputColor
}
