// Package frame encodes FLAC frame headers and subframes: the per-block
// bitstream unit that a decoder resynchronizes on, and the per-channel
// sample encoding within it.
package frame

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/flacenc/internal/crc8"
	"github.com/mewkiz/flacenc/internal/utf8num"
	"github.com/mewkiz/flacenc/sink"
)

// BlockingStrategy selects whether the coded number in a frame header is a
// frame index (Fixed, all blocks share one size) or the sample index of the
// block's first sample (Variable).
type BlockingStrategy uint8

const (
	BlockingFixed BlockingStrategy = iota
	BlockingVariable
)

const (
	syncWordFixed    uint16 = 0xFFF8
	syncWordVariable uint16 = 0xFFF9
)

// ChannelAssignment is the 4-bit channel-configuration tag, including the
// three stereo-decorrelation modes.
type ChannelAssignment uint8

const (
	ChannelMono ChannelAssignment = iota
	ChannelLeftRight
	ChannelLeftRightCenter
	ChannelQuad
	ChannelSurround5
	ChannelSurround6
	ChannelSurround7
	ChannelSurround8
	ChannelLeftSide  // stereo stored as left + (left-right)
	ChannelRightSide // stereo stored as right + (left-right)
	ChannelMidSide   // stereo stored as mid + (left-right)
)

// BlockSizeTag is the resolved 4-bit block-size tag plus any trailer bytes
// an "uncommon" size requires.
type BlockSizeTag struct {
	Code       uint8
	TrailerLen uint8
	Trailer    [2]byte
}

// NewBlockSizeTag resolves blockSize to the narrowest representation: an
// exact match against the well-known sizes, else Uncommon8 if blockSize-1
// fits a byte, else Uncommon16.
func NewBlockSizeTag(blockSize uint32) BlockSizeTag {
	switch blockSize {
	case 192:
		return BlockSizeTag{Code: 0x1}
	case 576:
		return BlockSizeTag{Code: 0x2}
	case 1152:
		return BlockSizeTag{Code: 0x3}
	case 2304:
		return BlockSizeTag{Code: 0x4}
	case 4608:
		return BlockSizeTag{Code: 0x5}
	case 256:
		return BlockSizeTag{Code: 0x8}
	case 512:
		return BlockSizeTag{Code: 0x9}
	case 1024:
		return BlockSizeTag{Code: 0xA}
	case 2048:
		return BlockSizeTag{Code: 0xB}
	case 4096:
		return BlockSizeTag{Code: 0xC}
	case 8192:
		return BlockSizeTag{Code: 0xD}
	case 16384:
		return BlockSizeTag{Code: 0xE}
	case 32768:
		return BlockSizeTag{Code: 0xF}
	}
	v := blockSize - 1
	if v <= 0xFF {
		return BlockSizeTag{Code: 0x6, TrailerLen: 1, Trailer: [2]byte{byte(v)}}
	}
	return BlockSizeTag{Code: 0x7, TrailerLen: 2, Trailer: [2]byte{byte(v >> 8), byte(v)}}
}

// SampleRateTag is the resolved 4-bit sample-rate tag plus any trailer
// bytes an "uncommon" rate requires.
type SampleRateTag struct {
	Code       uint8
	TrailerLen uint8
	Trailer    [2]byte
}

// NewSampleRateTag resolves rate to the narrowest representation: an exact
// match against the well-known rates, else Uncommon8 (kHz) for rates at or
// below 255 Hz, else Uncommon16 (Hz) below 65536 Hz, else Uncommon16Div10
// for multiples of 10 Hz whose quotient still fits 16 bits, else the
// from-streaminfo tag.
func NewSampleRateTag(rate uint32) SampleRateTag {
	switch rate {
	case 88_200:
		return SampleRateTag{Code: 0x1}
	case 176_400:
		return SampleRateTag{Code: 0x2}
	case 192_000:
		return SampleRateTag{Code: 0x3}
	case 8_000:
		return SampleRateTag{Code: 0x4}
	case 16_000:
		return SampleRateTag{Code: 0x5}
	case 22_050:
		return SampleRateTag{Code: 0x6}
	case 24_000:
		return SampleRateTag{Code: 0x7}
	case 32_000:
		return SampleRateTag{Code: 0x8}
	case 44_100:
		return SampleRateTag{Code: 0x9}
	case 48_000:
		return SampleRateTag{Code: 0xA}
	case 96_000:
		return SampleRateTag{Code: 0xB}
	}
	switch {
	case rate <= 0xFF:
		return SampleRateTag{Code: 0xC, TrailerLen: 1, Trailer: [2]byte{byte(rate)}}
	case rate < 0x1_0000:
		return SampleRateTag{Code: 0xD, TrailerLen: 2, Trailer: [2]byte{byte(rate >> 8), byte(rate)}}
	case rate%10 == 0 && rate/10 < 0x1_0000:
		tenths := rate / 10
		return SampleRateTag{Code: 0xE, TrailerLen: 2, Trailer: [2]byte{byte(tenths >> 8), byte(tenths)}}
	default:
		return SampleRateTag{Code: 0x0}
	}
}

// BitDepthTag is the 3-bit bit-depth tag. The wire codes are not
// sequential: 0b011 is reserved by the format and never assigned.
type BitDepthTag uint8

const (
	BitDepthFromStreamInfo BitDepthTag = 0b000
	BitDepth8              BitDepthTag = 0b001
	BitDepth12             BitDepthTag = 0b010
	BitDepth16             BitDepthTag = 0b100
	BitDepth20             BitDepthTag = 0b101
	BitDepth24             BitDepthTag = 0b110
	BitDepth32             BitDepthTag = 0b111
)

// NewBitDepthTag resolves bitDepth to its tag, or BitDepthFromStreamInfo if
// bitDepth isn't one of the six well-known depths.
func NewBitDepthTag(bitDepth uint8) BitDepthTag {
	switch bitDepth {
	case 8:
		return BitDepth8
	case 12:
		return BitDepth12
	case 16:
		return BitDepth16
	case 20:
		return BitDepth20
	case 24:
		return BitDepth24
	case 32:
		return BitDepth32
	default:
		return BitDepthFromStreamInfo
	}
}

// Header is a frame header: everything that precedes the subframes and is
// guarded by its own CRC-8.
type Header struct {
	Blocking   BlockingStrategy
	BlockSize  BlockSizeTag
	SampleRate SampleRateTag
	Channel    ChannelAssignment
	BitDepth   BitDepthTag

	// Num is the coded frame index (Blocking == BlockingFixed) or the
	// sample index of the block's first sample (Blocking ==
	// BlockingVariable). It must fit in 36 bits.
	Num uint64
}

// Write serializes the header, including its trailing CRC-8, to dst. It
// uses a 16-byte stack-local scratch buffer; it never allocates on the
// heap.
func (h *Header) Write(dst sink.ByteSink) error {
	var scratch [16]byte
	buf := sink.NewBuffer(scratch[:0])

	sync := syncWordFixed
	if h.Blocking == BlockingVariable {
		sync = syncWordVariable
	}
	if err := buf.WriteByte(byte(sync >> 8)); err != nil {
		return err
	}
	if err := buf.WriteByte(byte(sync)); err != nil {
		return err
	}
	if err := buf.WriteByte(h.BlockSize.Code<<4 | h.SampleRate.Code); err != nil {
		return err
	}
	if err := buf.WriteByte(uint8(h.Channel)<<4 | uint8(h.BitDepth)<<1); err != nil {
		return err
	}
	if err := utf8num.Write(buf, h.Num); err != nil {
		return err
	}
	if h.BlockSize.TrailerLen > 0 {
		if _, err := buf.Write(h.BlockSize.Trailer[:h.BlockSize.TrailerLen]); err != nil {
			return err
		}
	}
	if h.SampleRate.TrailerLen > 0 {
		if _, err := buf.Write(h.SampleRate.Trailer[:h.SampleRate.TrailerLen]); err != nil {
			return err
		}
	}

	crc := crc8.Checksum(buf.Bytes(), crc8.Poly)
	if err := buf.WriteByte(crc); err != nil {
		return errutil.Err(err)
	}

	for _, b := range buf.Bytes() {
		if err := dst.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
