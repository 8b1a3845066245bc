package crc8

import "testing"

func TestChecksum(t *testing.T) {
	golden := []struct {
		data []byte
		poly byte
		want byte
	}{
		{
			data: []byte{0x34, 0xC1, 0x6C},
			poly: 0x07,
			want: 0xB1,
		},
	}
	for _, g := range golden {
		got := Checksum(g.data, g.poly)
		if got != g.want {
			t.Errorf("Checksum(%#v, %#x): got 0x%02X, want 0x%02X", g.data, g.poly, got, g.want)
		}
	}
}

func TestHash8Incremental(t *testing.T) {
	data := []byte{0x34, 0xC1, 0x6C}
	want := Checksum(data, Poly)

	h := NewATM()
	for _, b := range data {
		if err := h.WriteByte(b); err != nil {
			t.Fatalf("WriteByte: %v", err)
		}
	}
	if got := h.Sum8(); got != want {
		t.Errorf("incremental Sum8: got 0x%02X, want 0x%02X", got, want)
	}

	h.Reset()
	h.Write(data)
	if got := h.Sum8(); got != want {
		t.Errorf("post-reset Sum8: got 0x%02X, want 0x%02X", got, want)
	}
}
