package meta

import (
	"bytes"
	"testing"
)

func TestPaddingWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := (Padding{N: 4}).Write(&buf, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := buf.Bytes()
	if len(got) != 4+4 {
		t.Fatalf("got %d bytes, want 8", len(got))
	}
	for _, b := range got[4:] {
		if b != 0 {
			t.Errorf("padding byte: got 0x%02X, want 0x00", b)
		}
	}
}
