package kfmt

import "io"

// ringBufferSize holds a full 80x25 text screen and must be a power of 2.
const ringBufferSize = 2048

const ringMask = ringBufferSize - 1

// ringBuffer keeps the most recent ringBufferSize bytes written to it. Once
// full, each write evicts the oldest bytes and counts them in dropped.
//
// head and tail only grow; they are masked when indexing data so tail-head is
// always the number of buffered bytes.
type ringBuffer struct {
	data       [ringBufferSize]byte
	head, tail uint
	dropped    uint
}

// Len returns the number of unread bytes.
func (rb *ringBuffer) Len() int {
	return int(rb.tail - rb.head)
}

// Write stores p, evicting the oldest data if needed. It never fails.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		if rb.tail-rb.head == ringBufferSize {
			rb.head++
			rb.dropped++
		}

		rb.data[rb.tail&ringMask] = b
		rb.tail++
	}

	return len(p), nil
}

// segment returns the unread bytes up to the end of the backing array.
func (rb *ringBuffer) segment() []byte {
	start := rb.head & ringMask
	end := start + (rb.tail - rb.head)
	if end > ringBufferSize {
		end = ringBufferSize
	}

	return rb.data[start:end]
}

// Read copies unread bytes into p. It returns io.EOF once the buffer is
// empty.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.head == rb.tail {
		return 0, io.EOF
	}

	n := copy(p, rb.segment())
	rb.head += uint(n)
	return n, nil
}

// WriteTo drains the buffer into w without an intermediate copy.
func (rb *ringBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for rb.head != rb.tail {
		seg := rb.segment()
		n, err := w.Write(seg)
		rb.head += uint(n)
		total += int64(n)

		switch {
		case err != nil:
			return total, err
		case n < len(seg):
			return total, io.ErrShortWrite
		}
	}

	return total, nil
}
