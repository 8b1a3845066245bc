package meta

import (
	"io"
	"math"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// StreamInfoLength is the fixed payload length, in bytes, of a StreamInfo
// block.
const StreamInfoLength = 34

// StreamInfo carries the information that must be present as the first
// metadata block of a FLAC stream: the sample format, the running
// block-size and frame-size extrema, the total sample count, and the MD5
// of the decoded audio.
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_streaminfo
type StreamInfo struct {
	MinBlockSize  uint16
	MaxBlockSize  uint16
	MinFrameSize  uint32
	MaxFrameSize  uint32
	SampleRate    uint32
	Channels      uint8
	BitsPerSample uint8
	TotalSamples  uint64
	MD5           [16]byte
}

// NewStreamInfo returns a StreamInfo for a stream with the given sample
// rate, channel count, and bit depth. The block-size and frame-size
// extrema start at their sentinel "nothing seen yet" values and are
// updated incrementally as blocks and frames are produced.
func NewStreamInfo(sampleRate uint32, channels, bitsPerSample uint8) *StreamInfo {
	return &StreamInfo{
		MinBlockSize:  math.MaxUint16,
		MaxBlockSize:  0,
		MinFrameSize:  math.MaxUint32 >> 8, // max 24-bit value
		MaxFrameSize:  0,
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: bitsPerSample,
	}
}

// AddedBlockWith folds a just-encoded block of size samples into the
// running block-size extrema and total sample count. Monotone: MinBlockSize
// only shrinks, MaxBlockSize only grows, TotalSamples only grows.
func (si *StreamInfo) AddedBlockWith(size uint32) {
	if size < uint32(si.MinBlockSize) {
		si.MinBlockSize = uint16(size)
	}
	if size > uint32(si.MaxBlockSize) {
		si.MaxBlockSize = uint16(size)
	}
	si.TotalSamples += uint64(size)
}

// AddedFrameWith folds the encoded byte size of a just-written frame into
// the running frame-size extrema. Monotone: MinFrameSize only shrinks,
// MaxFrameSize only grows.
func (si *StreamInfo) AddedFrameWith(size uint32) {
	if size < si.MinFrameSize {
		si.MinFrameSize = size
	}
	if size > si.MaxFrameSize {
		si.MaxFrameSize = size
	}
}

// Write serializes the block header and the StreamInfo body to dst.
func (si *StreamInfo) Write(dst io.Writer, isLast bool) error {
	return writeBlock(dst, func(bw *bitio.Writer) error {
		if err := writeHeader(bw, isLast, TypeStreamInfo, StreamInfoLength); err != nil {
			return err
		}
		if err := bw.WriteBits(uint64(si.MinBlockSize), 16); err != nil {
			return errutil.Err(err)
		}
		if err := bw.WriteBits(uint64(si.MaxBlockSize), 16); err != nil {
			return errutil.Err(err)
		}
		if err := bw.WriteBits(uint64(si.MinFrameSize), 24); err != nil {
			return errutil.Err(err)
		}
		if err := bw.WriteBits(uint64(si.MaxFrameSize), 24); err != nil {
			return errutil.Err(err)
		}
		if err := bw.WriteBits(uint64(si.SampleRate), 20); err != nil {
			return errutil.Err(err)
		}
		if err := bw.WriteBits(uint64(si.Channels-1), 3); err != nil {
			return errutil.Err(err)
		}
		if err := bw.WriteBits(uint64(si.BitsPerSample-1), 5); err != nil {
			return errutil.Err(err)
		}
		if err := bw.WriteBits(si.TotalSamples, 36); err != nil {
			return errutil.Err(err)
		}
		if _, err := bw.Write(si.MD5[:]); err != nil {
			return errutil.Err(err)
		}
		return nil
	})
}
