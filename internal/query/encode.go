package query

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var (
	errRecordTooLarge = errors.New("record would exceed 65535 bytes after EDNS upgrade")
	errEmptyLabel     = errors.New("empty label in QNAME")
	errLabelTooLong   = errors.New("label exceeds 63 octets")
	errNameTooLong    = errors.New("encoded QNAME exceeds 255 octets")
)

// encodeQName appends name's standard DNS wire-format encoding (a sequence
// of length-prefixed labels terminated by the zero-length root label) and
// returns the updated buffer. A single trailing dot is treated as the root
// and ignored; any other empty label is rejected.
func encodeQName(out []byte, name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")

	start := len(out)

	if name != "" {
		for _, label := range strings.Split(name, ".") {
			if label == "" {
				return nil, errEmptyLabel
			}
			if len(label) > 63 {
				return nil, errLabelTooLong
			}
			out = append(out, byte(len(label)))
			out = append(out, label...)
		}
	}

	out = append(out, 0x00) // root label

	if len(out)-start > 255 {
		return nil, errNameTooLong
	}

	return out, nil
}

// randomID returns a cryptographically random 16-bit DNS message ID.
// crypto/rand is used rather than math/rand so the ID cannot be predicted
// by an off-path attacker spoofing responses.
func randomID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// BuildQuery constructs a DNS query message for (name, qtype) per spec.md
// §4.2's question-encoder contract: a random 16-bit ID, QR=0, OPCODE=0,
// RD=1, QDCOUNT=1, every other header field zero, one question with QCLASS
// IN (1). Output is at most 12 + 255 + 4 bytes.
func BuildQuery(name string, qtype uint16) (Record, error) {
	id, err := randomID()
	if err != nil {
		return Record{}, fmt.Errorf("generating query ID: %w", err)
	}

	buf := make([]byte, headerSize, headerSize+255+4)
	binary.BigEndian.PutUint16(buf[offsetID:], id)
	buf[offsetFlags] = 0x01 // QR=0, OPCODE=0, AA=0, TC=0, RD=1
	buf[offsetFlags+1] = 0x00
	binary.BigEndian.PutUint16(buf[offsetQDCount:], 1)
	binary.BigEndian.PutUint16(buf[offsetANCount:], 0)
	binary.BigEndian.PutUint16(buf[offsetNSCount:], 0)
	binary.BigEndian.PutUint16(buf[offsetARCount:], 0)

	buf, err = encodeQName(buf, name)
	if err != nil {
		return Record{}, fmt.Errorf("encoding QNAME %q: %w", name, err)
	}

	buf = binary.BigEndian.AppendUint16(buf, qtype)
	buf = binary.BigEndian.AppendUint16(buf, 1) // QCLASS = IN

	return NewRecord(buf), nil
}
