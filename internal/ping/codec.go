// Package ping performs raw ICMP echo probes. Encode/decode are pure
// functions over byte slices so the wire format is testable without a
// socket.
package ping

import (
	"encoding/binary"
	"fmt"
)

const (
	typeEchoRequest = 8
	typeEchoReply   = 0
	headerLen       = 8
)

// Checksum computes the 16-bit one's-complement sum over the message.
// Recomputing it over a message that already carries its checksum
// yields 0.
func Checksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum)
}

// EncodeEchoRequest builds a type-8 echo request with big-endian
// identifier and sequence number and a valid checksum.
func EncodeEchoRequest(id, seq uint16, payload []byte) []byte {
	b := make([]byte, headerLen+len(payload))
	b[0] = typeEchoRequest
	binary.BigEndian.PutUint16(b[4:6], id)
	binary.BigEndian.PutUint16(b[6:8], seq)
	copy(b[headerLen:], payload)
	binary.BigEndian.PutUint16(b[2:4], Checksum(b))
	return b
}

// DecodeEchoReply validates a type-0 reply against the identifier and
// sequence of the request. A 20-byte IPv4 header may prefix the reply
// and is skipped when present.
func DecodeEchoReply(b []byte, id, seq uint16) error {
	if len(b) >= 20 && b[0]>>4 == 4 {
		hl := int(b[0]&0x0f) * 4
		if hl < 20 || len(b) < hl {
			return fmt.Errorf("ping: truncated IPv4 header")
		}
		b = b[hl:]
	}
	if len(b) < headerLen {
		return fmt.Errorf("ping: reply too short: %d bytes", len(b))
	}
	if b[0] != typeEchoReply {
		return fmt.Errorf("ping: unexpected type %d", b[0])
	}
	if Checksum(b) != 0 {
		return fmt.Errorf("ping: checksum mismatch")
	}
	if got := binary.BigEndian.Uint16(b[4:6]); got != id {
		return fmt.Errorf("ping: identifier %d, want %d", got, id)
	}
	if got := binary.BigEndian.Uint16(b[6:8]); got != seq {
		return fmt.Errorf("ping: sequence %d, want %d", got, seq)
	}
	return nil
}
