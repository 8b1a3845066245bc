// Package flacenc implements a bit-accurate, allocation-free FLAC encoder
// core: frame headers with CRC-8, Constant/Verbatim/Fixed-predictor
// subframes with Rice-coded residuals, frame CRC-16, and the StreamInfo,
// Padding, and Application metadata block writers. This release encodes
// mono streams only; decoding, seeking, LPC, and multi-channel
// interchannel decorrelation are not implemented.
package flacenc

import (
	"bufio"
	"crypto/md5"
	"hash"
	"io"

	"github.com/mewkiz/pkg/errutil"
	"go.uber.org/zap"

	"github.com/mewkiz/flacenc/frame"
	"github.com/mewkiz/flacenc/meta"
)

// Signature is present at the beginning of every FLAC stream.
const Signature = "fLaC"

// Encoder writes a mono FLAC stream to an underlying io.Writer: the "fLaC"
// signature, a StreamInfo metadata block, any caller-supplied trailing
// metadata blocks, and then a sequence of audio frames written one block
// at a time via WriteBlock.
type Encoder struct {
	w    io.Writer
	info *meta.StreamInfo
	log  *zap.Logger

	// bw wraps w as a sink.ByteSink for the frame-writing path; created
	// lazily on the first WriteBlock call.
	bw *bufio.Writer

	// isLastBlockFirst records whether the StreamInfo block was written as
	// the stream's only metadata block, so Close can rewrite it in place
	// with the same last-block flag.
	isLastBlockFirst bool

	// curNum is the next frame number (fixed blocking strategy only; this
	// release never emits variable-blocksize streams).
	curNum uint64
	md5sum hash.Hash

	// scratch backs every per-frame Write call; sized once in NewEncoder
	// and reused for the life of the encoder, honoring the zero per-frame
	// allocation requirement.
	scratch []byte
}

// NewEncoder writes the stream signature and a placeholder StreamInfo
// block (followed by any trailing metadata blocks) to w, and returns an
// Encoder ready to accept audio blocks via WriteBlock. scratch bounds the
// size of any single frame; a safe size is
// 16 + block_size*ceil(bit_depth/8) + 8 bytes. log may be nil, in which
// case diagnostic events are discarded.
func NewEncoder(w io.Writer, sampleRate uint32, bitsPerSample uint8, scratch []byte, log *zap.Logger, blocks ...metaBlock) (*Encoder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info := meta.NewStreamInfo(sampleRate, 1, bitsPerSample)
	enc := &Encoder{
		w:                w,
		info:             info,
		log:              log,
		md5sum:           md5.New(),
		scratch:          scratch,
		isLastBlockFirst: len(blocks) == 0,
	}

	if _, err := io.WriteString(w, Signature); err != nil {
		return nil, errutil.Err(err)
	}
	if err := info.Write(w, len(blocks) == 0); err != nil {
		return nil, errutil.Err(err)
	}
	for i, block := range blocks {
		if err := block.Write(w, i == len(blocks)-1); err != nil {
			return nil, errutil.Err(err)
		}
	}
	log.Debug("wrote stream header", zap.Uint32("sample_rate", sampleRate), zap.Uint8("bits_per_sample", bitsPerSample), zap.Int("trailing_blocks", len(blocks)))
	return enc, nil
}

// metaBlock is satisfied by every metadata block type this release can
// write after StreamInfo: Padding and Application.
type metaBlock interface {
	Write(dst io.Writer, isLast bool) error
}

var (
	_ metaBlock = meta.Padding{}
	_ metaBlock = meta.Application{}
)
