package frame

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/flacenc/internal/crc16"
	"github.com/mewkiz/flacenc/sink"
)

// Frame is a frame header plus one subframe per channel. This release
// supports exactly one subframe (mono); the format's multi-channel
// interchannel decorrelation is not enabled here.
type Frame struct {
	Header    Header
	Subframes []SubFrame
}

// Write serializes the frame header and each subframe, in declaration
// order, into scratch, computes the CRC-16 over those bytes, then writes
// the scratch bytes followed by the big-endian CRC-16 to dst.
// scratch must be large enough to hold the whole frame; a safe bound is
// 16 + ceil(channels*block_size*bit_depth/8) + 8 bytes.
func (f *Frame) Write(dst sink.ByteSink, scratch []byte) error {
	if len(f.Subframes) != 1 {
		return errutil.Newf("frame: channel count %d not supported (only mono is enabled in this release)", len(f.Subframes))
	}

	buf := sink.NewBuffer(scratch[:0])
	if err := f.Header.Write(buf); err != nil {
		return err
	}

	bw := sink.NewBitWriter(buf)
	for i := range f.Subframes {
		if err := f.Subframes[i].Write(bw); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	crc := crc16.Checksum(buf.Bytes(), crc16.Poly)

	for _, b := range buf.Bytes() {
		if err := dst.WriteByte(b); err != nil {
			return err
		}
	}
	if err := dst.WriteByte(byte(crc >> 8)); err != nil {
		return err
	}
	return dst.WriteByte(byte(crc))
}
