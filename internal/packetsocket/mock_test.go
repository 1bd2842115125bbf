package packetsocket

import "testing"

func TestRingSourceDeliversInOrder(t *testing.T) {
	r := NewRingSource()
	r.Push([]byte("first"), LinkAddr{Ifindex: 1})
	r.Push([]byte("second"), LinkAddr{Ifindex: 2})

	var got []string
	cb := func(buf []byte, addr LinkAddr) (int, error) {
		got = append(got, string(buf))
		return len(buf), nil
	}

	ok, err := r.RXRingNext(cb, 0)
	if !ok || err != nil {
		t.Fatalf("RXRingNext #1 = %v, %v", ok, err)
	}
	ok, err = r.RXRingNext(cb, 0)
	if !ok || err != nil {
		t.Fatalf("RXRingNext #2 = %v, %v", ok, err)
	}
	ok, err = r.RXRingNext(cb, 0)
	if ok || err != nil {
		t.Fatalf("RXRingNext #3 = %v, %v, want false, nil", ok, err)
	}

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("delivered = %v", got)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestFakeSenderRecordsDatagrams(t *testing.T) {
	s := NewFakeSender()
	dest := LinkAddr{Ifindex: 3}
	hw := [6]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

	n, err := s.SendBatch(dest, hw,
		[][]byte{[]byte("h1"), []byte("h2")},
		[][]byte{[]byte("p1"), []byte("p2")})
	if err != nil {
		t.Fatalf("SendBatch: %v", err)
	}
	if n != 2 {
		t.Fatalf("SendBatch accepted = %d, want 2", n)
	}

	sent := s.Sent()
	if len(sent) != 2 {
		t.Fatalf("Sent() len = %d, want 2", len(sent))
	}
	if string(sent[0].Header) != "h1" || string(sent[0].Payload) != "p1" {
		t.Fatalf("sent[0] = %+v", sent[0])
	}
	if sent[1].Dest != dest || sent[1].DestHW != hw {
		t.Fatalf("sent[1] dest/hw mismatch: %+v", sent[1])
	}
}

func TestFakeSenderFailAfterLimitsAcceptance(t *testing.T) {
	s := NewFakeSender()
	s.FailAfter = 1

	n, err := s.SendBatch(LinkAddr{}, [6]byte{},
		[][]byte{[]byte("h1"), []byte("h2")},
		[][]byte{[]byte("p1"), []byte("p2")})
	if n != 1 {
		t.Fatalf("accepted = %d, want 1", n)
	}
	if err == nil {
		t.Fatal("expected error when batch exceeds FailAfter")
	}
	if len(s.Sent()) != 1 {
		t.Fatalf("Sent() len = %d, want 1", len(s.Sent()))
	}
}
