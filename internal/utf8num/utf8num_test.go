package utf8num

import (
	"bytes"
	"testing"
)

func TestEncode(t *testing.T) {
	golden := []struct {
		num  uint64
		want []byte
	}{
		{num: 0x00, want: []byte{0x00}},
		{num: 0x7F, want: []byte{0x7F}},
		{num: 0x80, want: []byte{0xC2, 0x80}},
		{num: 0x7FF, want: []byte{0xDF, 0xBF}},
		{num: 0x800, want: []byte{0xE0, 0xA0, 0x80}},
		{num: 0xFFFF, want: []byte{0xEF, 0xBF, 0xBF}},
		{num: 0x10000, want: []byte{0xF0, 0x90, 0x80, 0x80}},
		{num: 0x1FFFFF, want: []byte{0xF7, 0xBF, 0xBF, 0xBF}},
		{num: 0x200000, want: []byte{0xF8, 0x88, 0x80, 0x80, 0x80}},
		{num: 0x3FFFFFF, want: []byte{0xFB, 0xBF, 0xBF, 0xBF, 0xBF}},
		{num: 0x4000000, want: []byte{0xFC, 0x84, 0x80, 0x80, 0x80, 0x80}},
		{num: 0x7FFFFFFF, want: []byte{0xFD, 0xBF, 0xBF, 0xBF, 0xBF, 0xBF}},
		{num: 0x80000000, want: []byte{0xFE, 0x82, 0x80, 0x80, 0x80, 0x80, 0x80}},
		{num: MaxValue, want: []byte{0xFE, 0xBF, 0xBF, 0xBF, 0xBF, 0xBF, 0xBF}},
	}
	for _, g := range golden {
		var scratch [7]byte
		got, err := Encode(g.num, scratch[:])
		if err != nil {
			t.Fatalf("Encode(%#x): %v", g.num, err)
		}
		if !bytes.Equal(got, g.want) {
			t.Errorf("Encode(%#x): got %#v, want %#v", g.num, got, g.want)
		}
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	var scratch [7]byte
	if _, err := Encode(MaxValue+1, scratch[:]); err == nil {
		t.Error("expected an error for a value beyond the 36-bit range")
	}
}

type collectSink struct {
	bytes []byte
}

func (c *collectSink) WriteByte(b byte) error {
	c.bytes = append(c.bytes, b)
	return nil
}

func TestWrite(t *testing.T) {
	var sink collectSink
	if err := Write(&sink, 0x10000); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := []byte{0xF0, 0x90, 0x80, 0x80}
	if !bytes.Equal(sink.bytes, want) {
		t.Errorf("got %#v, want %#v", sink.bytes, want)
	}
}
