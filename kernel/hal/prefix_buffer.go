package hal

// prefixBuffer is a fixed-capacity io.Writer used for building the per-driver
// log prefix. Writes that do not fit are truncated.
type prefixBuffer struct {
	data [64]byte
	len  int
}

// Write implements io.Writer.
func (b *prefixBuffer) Write(p []byte) (int, error) {
	n := copy(b.data[b.len:], p)
	b.len += n
	return len(p), nil
}

// Bytes returns the buffered data.
func (b *prefixBuffer) Bytes() []byte {
	return b.data[:b.len]
}

// Reset discards the buffered data.
func (b *prefixBuffer) Reset() {
	b.len = 0
}
