package query

import (
	"encoding/binary"

	"github.com/joshuafuller/dnsgen/internal/wirebuf"
)

// header field byte offsets within a DNS message, per RFC 1035 §4.1.1.
const (
	offsetID      = 0
	offsetFlags   = 2
	offsetQDCount = 4
	offsetANCount = 6
	offsetNSCount = 8
	offsetARCount = 10
	headerSize    = 12
)

// Record is a single, immutable-after-construction DNS query payload: a
// complete message from the UDP transport payload's perspective (header,
// one question, optionally one EDNS OPT RR). Equality is byte-equality.
type Record struct {
	b []byte
}

// NewRecord wraps raw DNS message bytes as a Record. The caller transfers
// ownership of b; it must not be mutated afterwards except through the
// Record's own methods.
func NewRecord(b []byte) Record {
	return Record{b: b}
}

// Bytes returns the record's wire-format bytes.
func (r Record) Bytes() []byte { return r.b }

// Size returns the record length in bytes.
func (r Record) Size() int { return len(r.b) }

// Equal reports whether two records hold byte-identical payloads.
func (r Record) Equal(other Record) bool {
	if len(r.b) != len(other.b) {
		return false
	}
	for i := range r.b {
		if r.b[i] != other.b[i] {
			return false
		}
	}
	return true
}

// QDCount returns the header's QDCOUNT field.
func (r Record) QDCount() uint16 {
	return binary.BigEndian.Uint16(r.b[offsetQDCount:])
}

// ARCount returns the header's ARCOUNT field.
func (r Record) ARCount() uint16 {
	return binary.BigEndian.Uint16(r.b[offsetARCount:])
}

func (r *Record) setARCount(n uint16) {
	binary.BigEndian.PutUint16(r.b[offsetARCount:], n)
}

// optTemplate builds the 11-byte EDNS OPT RR spec.md §4.2 specifies:
//
//	00 00 29 BH BL 00 00 FH FL 00 00
//
// where BH/BL is bufsize big-endian and FH/FL is flags big-endian.
func optTemplate(bufsize, flags uint16) [11]byte {
	var opt [11]byte
	opt[0] = 0x00 // root name
	opt[1] = 0x00
	opt[2] = 0x29 // TYPE = OPT (41)
	binary.BigEndian.PutUint16(opt[3:5], bufsize)
	opt[5] = 0x00 // extended-rcode
	opt[6] = 0x00 // version
	binary.BigEndian.PutUint16(opt[7:9], flags)
	opt[9] = 0x00 // RDLENGTH
	opt[10] = 0x00
	return opt
}

// withEDNS appends an EDNS OPT RR to the record and increments ARCOUNT,
// per spec.md §4.2. It reports an error rather than silently overflowing
// if the resulting record would exceed the 65535-byte wire-format limit
// (spec.md §9's Open Question: the original implementation does not bound
// this; dnsgen rejects instead).
func (r Record) withEDNS(bufsize, flags uint16) (Record, error) {
	opt := optTemplate(bufsize, flags)

	if len(r.b)+len(opt) > 65535 {
		return Record{}, errRecordTooLarge
	}

	buf := make([]byte, len(r.b)+len(opt))
	w := wirebuf.NewWriteView(buf)
	copy(w.Reserve(len(r.b)), r.b)
	copy(w.Reserve(len(opt)), opt[:])

	rec := Record{b: w.Written()}
	rec.setARCount(r.ARCount() + 1)
	return rec, nil
}
