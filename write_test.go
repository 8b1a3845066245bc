package flacenc

import (
	"bytes"
	"testing"

	"github.com/mewkiz/flacenc/frame"
	"github.com/mewkiz/flacenc/internal/crc16"
)

func TestWriteBlockFrameCRC(t *testing.T) {
	var buf bytes.Buffer
	var scratch [256]byte
	enc, err := NewEncoder(&buf, 8000, 16, scratch[:], nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	header := buf.Len()

	samples := []int32{10, 12, 11, 13, 15, 14, 16, 18}
	if err := enc.WriteBlock(samples); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}

	frameBytes := buf.Bytes()[header:]
	if len(frameBytes) < 3 {
		t.Fatalf("frame too short: %d bytes", len(frameBytes))
	}
	body, wantCRC := frameBytes[:len(frameBytes)-2], frameBytes[len(frameBytes)-2:]
	got := crc16.Checksum(body, crc16.Poly)
	want := uint16(wantCRC[0])<<8 | uint16(wantCRC[1])
	if got != want {
		t.Errorf("frame CRC-16: computed 0x%04X over body, trailer says 0x%04X", got, want)
	}
}

func TestWriteBlockUpdatesStreamInfo(t *testing.T) {
	var buf bytes.Buffer
	var scratch [256]byte
	enc, err := NewEncoder(&buf, 8000, 16, scratch[:], nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	if err := enc.WriteBlock([]int32{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}
	if err := enc.WriteBlock([]int32{5, 6}); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}

	if enc.info.TotalSamples != 6 {
		t.Errorf("TotalSamples: got %d, want 6", enc.info.TotalSamples)
	}
	if enc.info.MinBlockSize != 2 || enc.info.MaxBlockSize != 4 {
		t.Errorf("block size extrema: got [%d,%d], want [2,4]", enc.info.MinBlockSize, enc.info.MaxBlockSize)
	}
	if enc.curNum != 2 {
		t.Errorf("curNum: got %d, want 2", enc.curNum)
	}
}

func TestChooseSubframeConstant(t *testing.T) {
	sf := chooseSubframe([]int32{7, 7, 7, 7}, 16)
	if sf.Kind != frame.KindConstant {
		t.Errorf("Kind: got %v, want KindConstant", sf.Kind)
	}
}

func TestChooseSubframeFixedForVaryingSamples(t *testing.T) {
	sf := chooseSubframe([]int32{1, 3, 2, 5, 4, 7, 6, 9}, 16)
	if sf.Kind != frame.KindFixed {
		t.Errorf("Kind: got %v, want KindFixed", sf.Kind)
	}
	if sf.FixedOrder > 4 {
		t.Errorf("FixedOrder: got %d, want <= 4", sf.FixedOrder)
	}
}

func TestRiceParamFromMean(t *testing.T) {
	cases := []struct {
		sum, n uint64
		want   uint8
	}{
		{0, 1, 0},
		{1, 1, 0},
		{2, 1, 1},
		{8, 1, 3},
		{9, 1, 4},
	}
	for _, c := range cases {
		got := riceParamFromMean(c.sum, c.n)
		if got != c.want {
			t.Errorf("riceParamFromMean(%d, %d): got %d, want %d", c.sum, c.n, got, c.want)
		}
	}
}
