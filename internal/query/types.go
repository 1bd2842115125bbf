package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miekg/dns"
	gocache "github.com/patrickmn/go-cache"
)

// TypeTable resolves DNS RR type mnemonics ("A", "aaaa", "TYPE65280", ...)
// to their IANA numeric value. Lookups are case-insensitive. A mnemonic of
// the form TYPE<N>, where N is a decimal integer in [0, 65535], resolves to
// N directly and is memoized so repeated lookups of the same non-standard
// mnemonic are O(1). The memo key is the spelling as given when it already
// starts with upper-case "TYPE", and its upper-cased form otherwise.
//
// The zero value is not usable; construct with NewTypeTable.
type TypeTable struct {
	known   map[string]uint16
	numeric *gocache.Cache
}

// NewTypeTable returns a TypeTable seeded with the standard IANA RR type
// mnemonics, sourced from github.com/miekg/dns's maintained type registry.
func NewTypeTable() *TypeTable {
	known := make(map[string]uint16, len(dns.StringToType))
	for name, val := range dns.StringToType {
		known[strings.ToUpper(name)] = val
	}

	return &TypeTable{
		known:   known,
		numeric: gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Resolve converts a QTYPE mnemonic to its numeric value per spec.md §4.2:
//
//  1. An exact (case-sensitive) match against the seeded table wins first,
//     since most input files are already upper case.
//  2. A "TYPE<N>" spelling (exact case, N a decimal integer with no
//     trailing garbage, 0 <= N <= 65535) resolves to N and is memoized
//     under the original spelling.
//  3. Otherwise the input is upper-cased once and steps 1-2 are retried;
//     if that also fails, Resolve reports an error.
func (t *TypeTable) Resolve(s string) (uint16, error) {
	return t.resolve(s, true)
}

func (t *TypeTable) resolve(s string, foldCase bool) (uint16, error) {
	if v, ok := t.known[s]; ok {
		return v, nil
	}

	if v, ok := t.numeric.Get(s); ok {
		return v.(uint16), nil
	}

	if strings.HasPrefix(s, "TYPE") {
		numPart := s[len("TYPE"):]
		n, err := strconv.ParseUint(numPart, 10, 32)
		if err != nil || n > 65535 {
			return 0, fmt.Errorf("unrecognised QTYPE: %s", s)
		}
		val := uint16(n)
		t.numeric.Set(s, val, gocache.NoExpiration)
		return val, nil
	}

	if foldCase {
		return t.resolve(strings.ToUpper(s), false)
	}

	return 0, fmt.Errorf("unrecognised QTYPE: %s", s)
}
