// Package sink provides the zero-allocation byte and bit sinks used by the
// per-frame encode path: a caller-sized buffer to stand in for scratch
// memory, and a bit-packing adapter on top of it.
package sink

import (
	"github.com/mewkiz/pkg/errutil"
)

// A ByteSink accepts one byte at a time. Total order is the order of calls.
//
// ref: frame encodes against this interface so the per-frame hot path
// never cares whether the destination is a fixed-capacity scratch buffer
// or the final output stream.
type ByteSink interface {
	WriteByte(b byte) error
}

// Buffer is an append-only ByteSink backed by a caller-supplied slice. It
// never allocates: capacity is fixed at construction and Write returns an
// error rather than growing the backing array.
//
// The caller owns the backing array, typically a stack-local
//
//	var scratch [4096]byte
//	buf := sink.NewBuffer(scratch[:])
//
// so that a Frame or FrameHeader encode never reaches the heap.
type Buffer struct {
	buf []byte
	len int
}

// NewBuffer wraps buf as an empty, fixed-capacity ByteSink. cap(buf) bounds
// how many bytes may be written before WriteByte starts returning errors.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{buf: buf}
}

// WriteByte appends b to the buffer. It returns an error if the buffer's
// capacity is exhausted; the caller sized the buffer wrong.
func (b *Buffer) WriteByte(x byte) error {
	if b.len >= cap(b.buf) {
		return errutil.Newf("sink.Buffer.WriteByte: capacity exceeded (cap=%d)", cap(b.buf))
	}
	if b.len >= len(b.buf) {
		b.buf = b.buf[:b.len+1]
	}
	b.buf[b.len] = x
	b.len++
	return nil
}

// Write appends p to the buffer, byte by byte, stopping at the first error.
func (b *Buffer) Write(p []byte) (n int, err error) {
	for _, x := range p {
		if err := b.WriteByte(x); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Bytes returns the written slice [0, len).
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.len]
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return b.len
}

// Reset discards all written bytes without releasing the backing array.
func (b *Buffer) Reset() {
	b.len = 0
	b.buf = b.buf[:0]
}
