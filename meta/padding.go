package meta

import (
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// Padding reserves N zero bytes, letting later metadata grow in place
// without rewriting the whole stream.
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_padding
type Padding struct {
	N uint32
}

// Write serializes the block header followed by N zero bytes.
func (p Padding) Write(dst io.Writer, isLast bool) error {
	return writeBlock(dst, func(bw *bitio.Writer) error {
		if err := writeHeader(bw, isLast, TypePadding, p.N); err != nil {
			return err
		}
		for i := uint32(0); i < p.N; i++ {
			if err := bw.WriteByte(0); err != nil {
				return errutil.Err(err)
			}
		}
		return nil
	})
}
