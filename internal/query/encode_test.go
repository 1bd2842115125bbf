package query

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBuildQueryExampleCom(t *testing.T) {
	rec, err := BuildQuery("example.com", 1)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	b := rec.Bytes()
	if len(b) < 23 || len(b) > 29 {
		t.Fatalf("record length = %d, want in [23, 29]", len(b))
	}

	want := []byte("\x07example\x03com\x00\x00\x01\x00\x01")
	if !bytes.Equal(b[12:], want) {
		t.Fatalf("question section = %x, want %x", b[12:], want)
	}
}

func TestBuildQueryInvariants(t *testing.T) {
	rec, err := BuildQuery("host.example.net", 28)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	b := rec.Bytes()
	if rec.Size() < 12 {
		t.Fatalf("record size = %d, want >= 12", rec.Size())
	}
	if got := binary.BigEndian.Uint16(b[4:6]); got != 1 {
		t.Fatalf("QDCOUNT = %d, want 1", got)
	}
	for _, off := range []int{6, 7, 8, 9, 10, 11} {
		if b[off] != 0 {
			t.Fatalf("byte %d = %d, want 0 before edns", off, b[off])
		}
	}
	if b[2] != 0x01 || b[3] != 0x00 {
		t.Fatalf("flags = %02x %02x, want 01 00", b[2], b[3])
	}
}

func TestBuildQueryRejectsEmptyLabel(t *testing.T) {
	if _, err := BuildQuery("foo..bar", 1); err == nil {
		t.Fatal("expected error for empty label")
	}
}

func TestBuildQueryRejectsOverlongLabel(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := BuildQuery(string(long)+".com", 1); err == nil {
		t.Fatal("expected error for over-long label")
	}
}

func TestBuildQueryTrailingDotIsRoot(t *testing.T) {
	a, err := BuildQuery("example.com.", 1)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}
	b, err := BuildQuery("example.com", 1)
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}
	if !bytes.Equal(a.Bytes()[12:], b.Bytes()[12:]) {
		t.Fatal("trailing dot should encode identically to no trailing dot")
	}
}
