package sink

import (
	"github.com/mewkiz/pkg/errutil"
)

// BitWriter adapts a ByteSink into an MSB-first bit-level sink. It owns an
// exclusive reference to the underlying ByteSink for its lifetime: the
// accumulator holding not-yet-flushed bits only exists here, and Flush must
// be called before the BitWriter goes out of scope or the trailing partial
// byte is lost.
//
// Byte boundaries in the logical bit stream line up with the underlying
// ByteSink's byte boundaries exactly when nbits is zero.
type BitWriter struct {
	dst   ByteSink
	accum byte
	nbits uint8 // number of valid high bits currently held in accum, 0-7
}

// NewBitWriter returns a BitWriter that packs bits MSB-first into dst.
func NewBitWriter(dst ByteSink) *BitWriter {
	return &BitWriter{dst: dst}
}

// WriteBits writes the low n bits of bits, MSB-first, into the logical bit
// stream. n must be in [0, 8]; a larger n is a precondition violation.
func (bw *BitWriter) WriteBits(bits uint64, n uint8) error {
	if n > 8 {
		return errutil.Newf("sink.BitWriter.WriteBits: n=%d exceeds 8", n)
	}
	if n == 0 {
		return nil
	}
	// Keep only the low n bits, left-align them within a byte so they can be
	// merged with whatever is already pending in the accumulator.
	chunk := byte(bits&((1<<n)-1)) << (8 - n)

	bw.accum |= chunk >> bw.nbits
	total := bw.nbits + n
	if total < 8 {
		bw.nbits = total
		return nil
	}

	if err := bw.dst.WriteByte(bw.accum); err != nil {
		return err
	}
	total -= 8
	if total == 0 {
		bw.accum = 0
	} else {
		// Residual bits become the new accumulator, left-aligned.
		bw.accum = chunk << (n - total)
	}
	bw.nbits = total
	return nil
}

// WriteByte writes a full byte, equivalent to WriteBits(uint64(b), 8).
func (bw *BitWriter) WriteByte(b byte) error {
	return bw.WriteBits(uint64(b), 8)
}

// WriteBytes writes p one byte at a time.
func (bw *BitWriter) WriteBytes(p []byte) error {
	for _, b := range p {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// Flush emits the pending accumulator, zero-padded on the low side, if any
// bits are pending, and clears the accumulator. It is idempotent: calling
// Flush on an already-aligned writer is a no-op.
func (bw *BitWriter) Flush() error {
	if bw.nbits == 0 {
		return nil
	}
	if err := bw.dst.WriteByte(bw.accum); err != nil {
		return err
	}
	bw.accum = 0
	bw.nbits = 0
	return nil
}

// Aligned reports whether the writer currently sits on a byte boundary.
func (bw *BitWriter) Aligned() bool {
	return bw.nbits == 0
}

// WriteUnary encodes x as a unary code: x zero bits followed by a single one
// bit. It is written in chunks of at most 8 zero bits at a time so that a
// large x never requires a wider-than-byte WriteBits call; the logical bit
// stream produced is identical to writing x individual zero bits.
func (bw *BitWriter) WriteUnary(x uint64) error {
	for x >= 8 {
		if err := bw.WriteBits(0, 8); err != nil {
			return err
		}
		x -= 8
	}
	if x > 0 {
		if err := bw.WriteBits(0, uint8(x)); err != nil {
			return err
		}
	}
	return bw.WriteBits(1, 1)
}

// WriteTwosComplement writes x as an n-bit two's-complement big-endian
// integer, n in [1, 32].
func (bw *BitWriter) WriteTwosComplement(x int32, n uint8) error {
	u := uint64(uint32(x)) & ((1 << n) - 1)
	return bw.WriteBitsWide(u, n)
}

// WriteBitsWide writes the low n bits of u, MSB-first, in chunks of at most
// 8 bits at a time. Unlike WriteBits, n may exceed 8.
func (bw *BitWriter) WriteBitsWide(u uint64, n uint8) error {
	for n > 8 {
		shift := n - 8
		if err := bw.WriteBits(u>>shift, 8); err != nil {
			return err
		}
		n = shift
	}
	return bw.WriteBits(u, n)
}
