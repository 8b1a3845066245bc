// Package crc16 implements the bit-serial, non-reflected CRC-16 used to
// guard whole frames: polynomial 0x8005, initial value 0x0000, no final
// XOR.
package crc16

// Poly is the CRC-16 polynomial used by frame trailers
// (x^16+x^15+x^2+x^0, 0x8005).
const Poly = 0x8005

// Hash16 accumulates a CRC-16 over a stream of bytes written to it, in the
// style of hash.Hash so it can sit behind an io.MultiWriter the way the
// teacher's frame encoder fans writes out to both the output stream and a
// checksum.
type Hash16 struct {
	poly uint16
	crc  uint16
}

// New returns a Hash16 for the given polynomial, initialized to zero.
func New(poly uint16) *Hash16 {
	return &Hash16{poly: poly}
}

// NewIBM returns a Hash16 configured for FLAC's frame CRC-16
// (polynomial 0x8005), matching the naming the teacher reaches for
// (crc16.NewIBM in its frame encoder).
func NewIBM() *Hash16 {
	return New(Poly)
}

// Write folds p into the running CRC-16 and never fails.
func (h *Hash16) Write(p []byte) (n int, err error) {
	for _, b := range p {
		h.crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if h.crc&0x8000 != 0 {
				h.crc = (h.crc << 1) ^ h.poly
			} else {
				h.crc <<= 1
			}
		}
	}
	return len(p), nil
}

// WriteByte folds a single byte into the running CRC-16.
func (h *Hash16) WriteByte(b byte) error {
	_, err := h.Write([]byte{b})
	return err
}

// Sum16 returns the CRC-16 accumulated so far.
func (h *Hash16) Sum16() uint16 {
	return h.crc
}

// Reset zeroes the accumulator.
func (h *Hash16) Reset() {
	h.crc = 0
}

// Checksum computes the CRC-16 of data in one call, equivalent to writing
// data to a fresh Hash16 and reading Sum16.
func Checksum(data []byte, poly uint16) uint16 {
	h := New(poly)
	h.Write(data)
	return h.Sum16()
}
