package wirebuf

import (
	"bytes"
	"testing"
)

func TestWriteViewReserveAdvancesCursor(t *testing.T) {
	buf := make([]byte, 8)
	v := NewWriteView(buf)

	head := v.Reserve(3)
	copy(head, []byte{1, 2, 3})
	tail := v.Reserve(5)
	copy(tail, []byte{4, 5, 6, 7, 8})

	if v.Position() != 8 {
		t.Fatalf("position = %d, want 8", v.Position())
	}
	if v.Available() != 0 {
		t.Fatalf("available = %d, want 0", v.Available())
	}
	if !bytes.Equal(v.Written(), []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("written = %v", v.Written())
	}
}

func TestWriteViewReservePastEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	v := NewWriteView(make([]byte, 2))
	v.Reserve(3)
}

func TestReadViewReadAdvancesCursor(t *testing.T) {
	v := NewReadView([]byte{1, 2, 3, 4})

	a := v.Read(2)
	b := v.Read(2)

	if !bytes.Equal(a, []byte{1, 2}) || !bytes.Equal(b, []byte{3, 4}) {
		t.Fatalf("unexpected reads: %v %v", a, b)
	}
	if v.Available() != 0 {
		t.Fatalf("available = %d, want 0", v.Available())
	}
}

func TestReadViewResetRewindsCursor(t *testing.T) {
	v := NewReadView([]byte{1, 2, 3})
	v.Read(2)
	v.Reset()
	if v.Position() != 0 {
		t.Fatalf("position = %d, want 0", v.Position())
	}
	if v.Available() != 3 {
		t.Fatalf("available = %d, want 3", v.Available())
	}
}

func TestReadViewReadPastEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	v := NewReadView([]byte{1})
	v.Read(2)
}
