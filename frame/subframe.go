package frame

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mewkiz/flacenc/internal/zigzag"
	"github.com/mewkiz/flacenc/sink"
)

// SubFrameKind selects a subframe's body encoding. LPC is format-defined
// but not implemented by this release; selecting it is a precondition
// violation.
type SubFrameKind uint8

const (
	KindConstant SubFrameKind = iota
	KindVerbatim
	KindFixed
)

// RiceMethod selects the width of the residual-coding parameter field: 4
// bits (Rice4Bit) or 5 bits (Rice5Bit).
type RiceMethod uint8

const (
	Rice4Bit RiceMethod = iota
	Rice5Bit
)

// RiceParameter is the per-partition residual-coding parameter. A normal
// parameter selects Rice coding with shift k = Param; Escape selects the
// raw-sample escape path, where every residual is written as a Width-bit
// two's-complement value with no zig-zag fold and no unary quotient.
type RiceParameter struct {
	Escape bool
	Param  uint8
	Width  uint8
}

func (m RiceMethod) bits() (paramBits uint8, escapeCode uint64) {
	if m == Rice5Bit {
		return 5, 0b11111
	}
	return 4, 0b1111
}

// SubFrame is one channel's encoding of one block.
type SubFrame struct {
	Kind SubFrameKind

	// FixedOrder is the fixed-predictor order, 0 through 4, used when
	// Kind == KindFixed.
	FixedOrder uint8

	// WastedBits is the count of trailing zero bits common to every
	// sample, shifted off before encoding. Must be less than BitDepth.
	WastedBits uint8

	// BitDepth is the sample bit depth before wasted-bits removal, 4
	// through 32.
	BitDepth uint8

	// Samples holds the block's samples for this channel, at full
	// BitDepth width (not yet shifted by WastedBits).
	Samples []int32

	// RiceMethod and RiceParam configure residual coding; they are
	// ignored for KindConstant and KindVerbatim.
	RiceMethod RiceMethod
	RiceParam  RiceParameter
}

func (sf *SubFrame) wireTag() (uint8, error) {
	switch sf.Kind {
	case KindConstant:
		return 0b000000, nil
	case KindVerbatim:
		return 0b000001, nil
	case KindFixed:
		if sf.FixedOrder > 4 {
			return 0, errutil.Newf("frame: fixed predictor order %d not supported (want 0-4)", sf.FixedOrder)
		}
		return 0b001000 | sf.FixedOrder, nil
	default:
		return 0, errutil.Newf("frame: unsupported subframe kind %d", sf.Kind)
	}
}

// Write encodes the subframe to bw: the type/wasted-bits header byte, the
// optional wasted-bits unary marker, and the body.
func (sf *SubFrame) Write(bw *sink.BitWriter) error {
	if sf.WastedBits >= sf.BitDepth {
		return errutil.Newf("frame: wasted bits %d >= bit depth %d", sf.WastedBits, sf.BitDepth)
	}
	tag, err := sf.wireTag()
	if err != nil {
		return err
	}
	header := tag << 1
	if sf.WastedBits != 0 {
		header |= 1
	}
	if err := bw.WriteBits(uint64(header), 8); err != nil {
		return err
	}
	if sf.WastedBits != 0 {
		if err := bw.WriteUnary(uint64(sf.WastedBits - 1)); err != nil {
			return err
		}
	}

	w := sf.WastedBits
	b := sf.BitDepth - w

	switch sf.Kind {
	case KindConstant:
		return bw.WriteTwosComplement(sf.Samples[0]>>w, b)
	case KindVerbatim:
		for _, s := range sf.Samples {
			if err := bw.WriteTwosComplement(s>>w, b); err != nil {
				return err
			}
		}
		return nil
	case KindFixed:
		return sf.writeFixed(bw, w, b)
	default:
		return errutil.Newf("frame: unsupported subframe kind %d", sf.Kind)
	}
}

// predictFixed evaluates the standard FLAC fixed polynomial predictor of
// the given order at sample index i, over samples already shifted right by
// w wasted bits.
func (sf *SubFrame) predictFixed(order int, i int, w uint8) int32 {
	x := func(j int) int32 { return sf.Samples[j] >> w }
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

func (sf *SubFrame) writeFixed(bw *sink.BitWriter, w, b uint8) error {
	order := int(sf.FixedOrder)
	n := len(sf.Samples)

	for i := 0; i < order; i++ {
		if err := bw.WriteTwosComplement(sf.Samples[i]>>w, b); err != nil {
			return err
		}
	}

	methodTag := uint64(0b00)
	if sf.RiceMethod == Rice5Bit {
		methodTag = 0b01
	}
	if err := bw.WriteBits(methodTag, 2); err != nil {
		return err
	}
	// Partition order is fixed to 0: a single partition spans the whole
	// block. Multi-partition residual coding is format-defined but not
	// produced by this release.
	if err := bw.WriteBits(0, 4); err != nil {
		return err
	}

	paramBits, escapeCode := sf.RiceMethod.bits()
	if sf.RiceParam.Escape {
		if err := bw.WriteBits(escapeCode, paramBits); err != nil {
			return err
		}
		if err := bw.WriteBits(uint64(sf.RiceParam.Width), 5); err != nil {
			return err
		}
		for i := order; i < n; i++ {
			pred := sf.predictFixed(order, i, w)
			residual := (sf.Samples[i] >> w) - pred
			if err := bw.WriteTwosComplement(residual, sf.RiceParam.Width); err != nil {
				return err
			}
		}
		return nil
	}

	if uint64(sf.RiceParam.Param) >= escapeCode {
		return errutil.Newf("frame: rice parameter %d collides with the escape code", sf.RiceParam.Param)
	}
	if err := bw.WriteBits(uint64(sf.RiceParam.Param), paramBits); err != nil {
		return err
	}
	k := sf.RiceParam.Param
	for i := order; i < n; i++ {
		pred := sf.predictFixed(order, i, w)
		residual := (sf.Samples[i] >> w) - pred
		u := zigzag.Encode(residual)
		if err := bw.WriteUnary(uint64(u) >> k); err != nil {
			return err
		}
		if k > 0 {
			if err := bw.WriteBitsWide(uint64(u)&(1<<k-1), k); err != nil {
				return err
			}
		}
	}
	return nil
}
