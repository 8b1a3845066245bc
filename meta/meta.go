// Package meta writes FLAC metadata blocks: the StreamInfo block that must
// open every stream, Padding, and Application blocks. Other block types
// defined by the format (SeekTable, VorbisComment, CueSheet, Picture) are
// not produced by this release.
package meta

import (
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// BlockType identifies the kind of metadata block a header precedes.
type BlockType uint8

// Metadata block types, in their on-wire order.
const (
	TypeStreamInfo BlockType = iota
	TypePadding
	TypeApplication
	TypeSeekTable
	TypeVorbisComment
	TypeCueSheet
	TypePicture
)

// writeHeader writes the 4-byte block header shared by every metadata
// block: a last-block flag, a 7-bit type code, and a 24-bit payload length.
func writeHeader(bw *bitio.Writer, isLast bool, typ BlockType, length uint32) error {
	last := uint64(0)
	if isLast {
		last = 1
	}
	if err := bw.WriteBits(last, 1); err != nil {
		return errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(typ), 7); err != nil {
		return errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(length), 24); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// writeBlock wraps dst in a bit writer, runs body to emit a header and
// payload, and flushes the result. Every block produced by this package is
// byte-aligned by construction, so the flush never pads a partial byte.
func writeBlock(dst io.Writer, body func(bw *bitio.Writer) error) error {
	bw := bitio.NewWriter(dst)
	if err := body(bw); err != nil {
		return err
	}
	if err := bw.Close(); err != nil {
		return errutil.Err(err)
	}
	return nil
}
