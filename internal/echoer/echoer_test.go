package echoer

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/joshuafuller/dnsgen/internal/packetsocket"
)

func buildTestPacket(srcIP, dstIP [4]byte, srcPort, dstPort uint16, payload string) []byte {
	buf := make([]byte, 20+8+len(payload))
	buf[0] = 0x45
	copy(buf[12:16], srcIP[:])
	copy(buf[16:20], dstIP[:])
	binary.BigEndian.PutUint16(buf[20:22], srcPort)
	binary.BigEndian.PutUint16(buf[22:24], dstPort)
	binary.BigEndian.PutUint16(buf[24:26], uint16(8+len(payload)))
	copy(buf[28:], payload)
	return buf
}

func TestDoEchoSwapsAddressesForMatchingPort(t *testing.T) {
	sock := packetsocket.NewEchoSocket()
	src := [4]byte{10, 0, 0, 1}
	dst := [4]byte{10, 0, 0, 2}
	pkt := buildTestPacket(src, dst, 55000, 8053, "query")

	n, err := doEcho(sock, pkt, packetsocket.LinkAddr{Ifindex: 3}, 8053)
	if err != nil {
		t.Fatalf("doEcho: %v", err)
	}
	if n != len(pkt) {
		t.Fatalf("doEcho returned %d, want %d", n, len(pkt))
	}

	replies := sock.Replies()
	if len(replies) != 1 {
		t.Fatalf("len(replies) = %d, want 1", len(replies))
	}
	got := replies[0].Buf

	var gotSrc, gotDst [4]byte
	copy(gotSrc[:], got[12:16])
	copy(gotDst[:], got[16:20])
	if gotSrc != dst || gotDst != src {
		t.Fatalf("saddr/daddr after echo = %v/%v, want %v/%v", gotSrc, gotDst, dst, src)
	}

	gotSrcPort := binary.BigEndian.Uint16(got[20:22])
	gotDstPort := binary.BigEndian.Uint16(got[22:24])
	if gotSrcPort != 8053 || gotDstPort != 55000 {
		t.Fatalf("ports after echo = %d/%d, want 8053/55000", gotSrcPort, gotDstPort)
	}
}

func TestDoEchoDropsNonMatchingPort(t *testing.T) {
	sock := packetsocket.NewEchoSocket()
	pkt := buildTestPacket([4]byte{1, 1, 1, 1}, [4]byte{2, 2, 2, 2}, 55000, 9999, "x")

	n, err := doEcho(sock, pkt, packetsocket.LinkAddr{}, 8053)
	if err != nil {
		t.Fatalf("doEcho: %v", err)
	}
	if n != 0 {
		t.Fatalf("doEcho returned %d, want 0 for non-matching port", n)
	}
	if len(sock.Replies()) != 0 {
		t.Fatal("expected no replies for non-matching port")
	}
}

func TestWorkerReflectsQueuedFrames(t *testing.T) {
	sock := packetsocket.NewEchoSocket()
	sock.Push(buildTestPacket([4]byte{1, 2, 3, 4}, [4]byte{5, 6, 7, 8}, 40000, 8053, "q1"), packetsocket.LinkAddr{Ifindex: 1})
	sock.Push(buildTestPacket([4]byte{1, 2, 3, 4}, [4]byte{5, 6, 7, 8}, 40001, 9999, "q2"), packetsocket.LinkAddr{Ifindex: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Worker(ctx, sock, 8053) }()

	deadline := time.After(2 * time.Second)
	for sock.Remaining() > 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for worker to drain queue")
		default:
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after cancel")
	}

	if len(sock.Replies()) != 1 {
		t.Fatalf("len(replies) = %d, want 1 (only the matching-port packet)", len(sock.Replies()))
	}
}
