package sink

import (
	"bytes"
	"testing"
)

func TestBitWriterByteAligned(t *testing.T) {
	var scratch [8]byte
	buf := NewBuffer(scratch[:0])
	bw := NewBitWriter(buf)

	data := []byte{0x34, 0xC1, 0x6C}
	if err := bw.WriteBytes(data); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Errorf("got %#v, want %#v", buf.Bytes(), data)
	}
}

func TestBitWriterRepack(t *testing.T) {
	// Writing one leading zero bit and then the three input bytes whole
	// shifts every byte right by one bit across byte boundaries:
	// 0b0011_0100 becomes 0b0001_1010 with its low bit carried into the
	// next output byte, and so on; Flush zero-pads the final partial byte.
	var scratch [4]byte
	buf := NewBuffer(scratch[:0])
	bw := NewBitWriter(buf)

	if err := bw.WriteBits(0, 1); err != nil {
		t.Fatal(err)
	}
	for _, b := range []byte{0x34, 0xC1, 0x6C} {
		if err := bw.WriteBits(uint64(b), 8); err != nil {
			t.Fatal(err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []byte{0b0001_1010, 0b0110_0000, 0b1011_0110, 0b0000_0000}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %#v, want %#v", buf.Bytes(), want)
	}
}

func TestBitWriterUnary(t *testing.T) {
	golden := []struct {
		x    uint64
		want []byte
	}{
		{x: 0, want: []byte{0b1000_0000}},
		{x: 3, want: []byte{0b0001_0000}},
		{x: 8, want: []byte{0b0000_0000, 0b1000_0000}},
		{x: 10, want: []byte{0b0000_0000, 0b0010_0000}},
	}
	for _, g := range golden {
		var scratch [4]byte
		buf := NewBuffer(scratch[:0])
		bw := NewBitWriter(buf)
		if err := bw.WriteUnary(g.x); err != nil {
			t.Fatalf("WriteUnary(%d): %v", g.x, err)
		}
		if err := bw.Flush(); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(buf.Bytes(), g.want) {
			t.Errorf("WriteUnary(%d): got %#v, want %#v", g.x, buf.Bytes(), g.want)
		}
	}
}

func TestBitWriterTwosComplement(t *testing.T) {
	var scratch [4]byte
	buf := NewBuffer(scratch[:0])
	bw := NewBitWriter(buf)
	if err := bw.WriteTwosComplement(-1, 4); err != nil {
		t.Fatal(err)
	}
	if err := bw.WriteTwosComplement(3, 4); err != nil {
		t.Fatal(err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []byte{0b1111_0011}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %#v, want %#v", buf.Bytes(), want)
	}
}

func TestBufferCapacityExceeded(t *testing.T) {
	buf := NewBuffer(make([]byte, 0, 1))
	if err := buf.WriteByte(0x00); err != nil {
		t.Fatalf("first WriteByte: %v", err)
	}
	if err := buf.WriteByte(0x00); err == nil {
		t.Error("expected capacity-exceeded error, got nil")
	}
}
