package generator

import "encoding/binary"

const (
	ipHeaderLen  = 20
	udpHeaderLen = 8
	headerLen    = ipHeaderLen + udpHeaderLen
)

// buildHeader packs the coalesced IP+UDP header for one outbound datagram
// into h, per spec.md §4.4/§6. h must be exactly headerLen bytes: IP
// immediately followed by UDP, with no padding between them.
func buildHeader(h []byte, srcIP, dstIP [4]byte, srcPort, dstPort, ipID uint16, payloadLen int) {
	udpLen := udpHeaderLen + payloadLen
	totLen := ipHeaderLen + udpLen

	h[0] = 0x45 // ihl=5, version=4
	h[1] = 0    // tos
	binary.BigEndian.PutUint16(h[2:4], uint16(totLen))
	binary.BigEndian.PutUint16(h[4:6], ipID)
	binary.BigEndian.PutUint16(h[6:8], 0) // flags=0, frag_off=0
	h[8] = 8                              // ttl
	h[9] = 17                             // protocol=UDP
	binary.BigEndian.PutUint16(h[10:12], 0)
	copy(h[12:16], srcIP[:])
	copy(h[16:20], dstIP[:])
	binary.BigEndian.PutUint16(h[10:12], ipChecksum(h[:ipHeaderLen]))

	u := h[ipHeaderLen:]
	binary.BigEndian.PutUint16(u[0:2], srcPort)
	binary.BigEndian.PutUint16(u[2:4], dstPort)
	binary.BigEndian.PutUint16(u[4:6], uint16(udpLen))
	binary.BigEndian.PutUint16(u[6:8], 0) // checksum left zero, per spec.md §4.4
}

// ipChecksum computes the RFC 1071 one's-complement checksum of an IPv4
// header, with the check field itself assumed zero. It sums the header as
// network-order 16-bit words, so the result is portable regardless of host
// endianness (spec.md §9's open question on this routine).
func ipChecksum(header []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(header); i += 2 {
		sum += uint32(binary.BigEndian.Uint16(header[i : i+2]))
	}
	if len(header)%2 == 1 {
		sum += uint32(header[len(header)-1]) << 8
	}

	sum = (sum >> 16) + (sum & 0xffff)
	sum += sum >> 16

	return ^uint16(sum)
}
