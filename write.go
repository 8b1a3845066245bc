package flacenc

import (
	"bufio"
	"encoding/binary"

	"github.com/mewkiz/pkg/errutil"
	"go.uber.org/zap"

	"github.com/mewkiz/flacenc/frame"
	"github.com/mewkiz/flacenc/internal/zigzag"
)

// WriteBlock encodes one block of mono samples as a FLAC frame: it selects
// a subframe encoding (Constant when every sample is identical, otherwise
// the fixed-predictor order with the smallest total residual magnitude),
// picks a Rice parameter from the residual mean, and writes the frame to
// the output stream. The StreamInfo block-size/frame-size extrema and
// total sample count are updated to reflect the written block.
func (enc *Encoder) WriteBlock(samples []int32) error {
	if enc.bw == nil {
		// Sized so a whole frame (at most the scratch bytes plus the CRC-16)
		// fits without an intermediate flush, keeping Buffered() an exact
		// measure of the frame size below.
		enc.bw = bufio.NewWriterSize(enc.w, cap(enc.scratch)+2)
	}

	sf := chooseSubframe(samples, enc.info.BitsPerSample)
	f := &frame.Frame{
		Header: frame.Header{
			Blocking:   frame.BlockingFixed,
			BlockSize:  frame.NewBlockSizeTag(uint32(len(samples))),
			SampleRate: frame.NewSampleRateTag(enc.info.SampleRate),
			Channel:    frame.ChannelMono,
			BitDepth:   frame.NewBitDepthTag(enc.info.BitsPerSample),
			Num:        enc.curNum,
		},
		Subframes: []frame.SubFrame{sf},
	}

	before := enc.bw.Buffered()
	if err := f.Write(enc.bw, enc.scratch); err != nil {
		return errutil.Err(err)
	}
	frameSize := enc.bw.Buffered() - before
	if err := enc.bw.Flush(); err != nil {
		return errutil.Err(err)
	}

	enc.updateMD5(samples)
	enc.curNum++
	enc.info.AddedBlockWith(uint32(len(samples)))
	enc.info.AddedFrameWith(uint32(frameSize))
	enc.log.Debug("wrote frame",
		zap.Uint64("frame_num", f.Header.Num),
		zap.Int("block_size", len(samples)),
		zap.Int("frame_size", frameSize),
	)
	return nil
}

// updateMD5 folds samples, packed as little-endian PCM at the stream's bit
// depth, into the running MD5 of the unencoded audio.
func (enc *Encoder) updateMD5(samples []int32) {
	width := int((enc.info.BitsPerSample + 7) / 8)
	var buf [4]byte
	for _, s := range samples {
		u := uint32(s)
		binary.LittleEndian.PutUint32(buf[:], u)
		enc.md5sum.Write(buf[:width])
	}
}

// chooseSubframe picks the cheapest subframe encoding this release
// supports for samples: Constant when every sample is identical,
// otherwise the fixed-predictor order (0 through 4, capped by the number
// of available warm-up samples) whose residuals have the smallest total
// zig-zag magnitude, with a Rice-4 parameter estimated from their mean.
func chooseSubframe(samples []int32, bitDepth uint8) frame.SubFrame {
	if isConstant(samples) {
		return frame.SubFrame{
			Kind:     frame.KindConstant,
			BitDepth: bitDepth,
			Samples:  samples,
		}
	}

	maxOrder := 4
	if len(samples)-1 < maxOrder {
		maxOrder = len(samples) - 1
	}
	if maxOrder < 0 {
		maxOrder = 0
	}

	bestOrder := 0
	var bestSum uint64
	for order := 0; order <= maxOrder; order++ {
		sum := residualMagnitudeSum(samples, order)
		if order == 0 || sum < bestSum {
			bestSum = sum
			bestOrder = order
		}
	}

	n := uint64(len(samples) - bestOrder)
	param := riceParamFromMean(bestSum, n)
	return frame.SubFrame{
		Kind:       frame.KindFixed,
		FixedOrder: uint8(bestOrder),
		BitDepth:   bitDepth,
		Samples:    samples,
		RiceMethod: frame.Rice4Bit,
		RiceParam:  frame.RiceParameter{Param: param},
	}
}

func isConstant(samples []int32) bool {
	for _, s := range samples[1:] {
		if s != samples[0] {
			return false
		}
	}
	return true
}

func predictFixed(samples []int32, order, i int) int32 {
	x := func(j int) int32 { return samples[j] }
	switch order {
	case 0:
		return 0
	case 1:
		return x(i - 1)
	case 2:
		return 2*x(i-1) - x(i-2)
	case 3:
		return 3*x(i-1) - 3*x(i-2) + x(i-3)
	case 4:
		return 4*x(i-1) - 6*x(i-2) + 4*x(i-3) - x(i-4)
	default:
		return 0
	}
}

func residualMagnitudeSum(samples []int32, order int) uint64 {
	var sum uint64
	for i := order; i < len(samples); i++ {
		residual := samples[i] - predictFixed(samples, order, i)
		sum += uint64(zigzag.Encode(residual))
	}
	return sum
}

// riceParamFromMean estimates the Rice parameter k from the mean residual
// magnitude: the classic choice is the smallest k with 2^k >= mean, capped
// to stay below Rice4Bit's escape code.
func riceParamFromMean(sum uint64, n uint64) uint8 {
	if n == 0 {
		return 0
	}
	mean := sum / n
	var k uint8
	for (uint64(1) << k) < mean && k < 14 {
		k++
	}
	return k
}
