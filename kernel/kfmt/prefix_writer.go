package kfmt

import (
	"bytes"
	"io"
)

// PrefixWriter writes each line to Sink behind the tag for Level and Prefix.
// Both are emitted lazily when the first byte of a line arrives so changing
// Level or Prefix between writes affects the next line only.
type PrefixWriter struct {
	Sink   io.Writer
	Level  Level
	Prefix []byte

	midLine bool
}

// Write returns the number of bytes of p written to Sink; the injected tag
// and prefix are not counted.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written int

	for len(p) != 0 {
		if !w.midLine {
			writeLevelTag(w.Sink, w.Level)
			if len(w.Prefix) != 0 {
				w.Sink.Write(w.Prefix)
			}
			w.midLine = true
		}

		line := p
		if nl := bytes.IndexByte(p, '\n'); nl >= 0 {
			line = p[:nl+1]
		}

		n, err := w.Sink.Write(line)
		written += n
		if err != nil {
			return written, err
		}

		if line[len(line)-1] == '\n' {
			w.midLine = false
		}
		p = p[len(line):]
	}

	return written, nil
}
