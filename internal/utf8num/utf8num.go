// Package utf8num writes the UTF-8-style variable-length coded numbers used
// for frame and sample numbers in a frame header: 1 to 7 bytes, continuation
// bytes tagged 10xxxxxx, with the number of leading one-bits in the first
// byte indicating the total byte count (the literal UTF-8 encoding scheme,
// extended to 7 bytes to cover up to 36 bits).
package utf8num

import "github.com/mewkiz/pkg/errutil"

// MaxValue is the largest value representable in the 7-byte coded form,
// 2^36 - 1.
const MaxValue = 1<<36 - 1

// ByteSink accepts one byte at a time.
type ByteSink interface {
	WriteByte(b byte) error
}

// Encode returns the coded-number byte sequence for num. The returned slice
// aliases scratch: scratch must have length at least 7.
//
// Grounded on the continuation-byte layout used for coded frame/sample
// numbers: 1-byte for values up to 0x7F, then 2 through 7 byte forms each
// adding one leading one-bit to the first byte's high nibble and one
// continuation byte (10xxxxxx, six payload bits) per additional byte.
func Encode(num uint64, scratch []byte) ([]byte, error) {
	if num > MaxValue {
		return nil, errutil.Newf("utf8num.Encode: value %d exceeds %d-bit range", num, 36)
	}
	if len(scratch) < 7 {
		return nil, errutil.Newf("utf8num.Encode: scratch too small (len=%d, need 7)", len(scratch))
	}

	switch {
	case num <= 0x7F:
		scratch[0] = byte(num)
		return scratch[:1], nil
	case num <= 0x7FF:
		scratch[0] = 0xC0 | byte(num>>6)&0x1F
		scratch[1] = 0x80 | byte(num)&0x3F
		return scratch[:2], nil
	case num <= 0xFFFF:
		scratch[0] = 0xE0 | byte(num>>12)&0x0F
		scratch[1] = 0x80 | byte(num>>6)&0x3F
		scratch[2] = 0x80 | byte(num)&0x3F
		return scratch[:3], nil
	case num <= 0x1FFFFF:
		scratch[0] = 0xF0 | byte(num>>18)&0x07
		scratch[1] = 0x80 | byte(num>>12)&0x3F
		scratch[2] = 0x80 | byte(num>>6)&0x3F
		scratch[3] = 0x80 | byte(num)&0x3F
		return scratch[:4], nil
	case num <= 0x3FFFFFF:
		scratch[0] = 0xF8 | byte(num>>24)&0x03
		scratch[1] = 0x80 | byte(num>>18)&0x3F
		scratch[2] = 0x80 | byte(num>>12)&0x3F
		scratch[3] = 0x80 | byte(num>>6)&0x3F
		scratch[4] = 0x80 | byte(num)&0x3F
		return scratch[:5], nil
	case num <= 0x7FFFFFFF:
		scratch[0] = 0xFC | byte(num>>30)&0x01
		scratch[1] = 0x80 | byte(num>>24)&0x3F
		scratch[2] = 0x80 | byte(num>>18)&0x3F
		scratch[3] = 0x80 | byte(num>>12)&0x3F
		scratch[4] = 0x80 | byte(num>>6)&0x3F
		scratch[5] = 0x80 | byte(num)&0x3F
		return scratch[:6], nil
	default: // num <= MaxValue, the 7-byte form.
		scratch[0] = 0xFE
		scratch[1] = 0x80 | byte(num>>30)&0x3F
		scratch[2] = 0x80 | byte(num>>24)&0x3F
		scratch[3] = 0x80 | byte(num>>18)&0x3F
		scratch[4] = 0x80 | byte(num>>12)&0x3F
		scratch[5] = 0x80 | byte(num>>6)&0x3F
		scratch[6] = 0x80 | byte(num)&0x3F
		return scratch[:7], nil
	}
}

// Write encodes num and writes it to dst one byte at a time.
func Write(dst ByteSink, num uint64) error {
	var scratch [7]byte
	code, err := Encode(num, scratch[:])
	if err != nil {
		return err
	}
	for _, b := range code {
		if err := dst.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
