// Package smc speaks the thermal-management service's fixed 77-byte
// key-read protocol and decodes its sp78/fpe2 fixed-point values.
// The codec is pure; I/O lives behind the Conn interface.
package smc

import (
	"encoding/binary"
	"fmt"
)

// BufferSize is the length of every request and response frame.
const BufferSize = 77

// Frame offsets and command values for a key read.
const (
	offKey      = 0  // bytes 0-3: 4-character sensor key, request only
	offDataSize = 26 // data-size field, always 32 for the reads used here
	offCommand  = 40 // command byte
	offData     = 45 // response bytes 45-46: big-endian 16-bit raw value

	cmdReadKey   = 5
	readDataSize = 32
)

// Buffer is one wire frame.
type Buffer [BufferSize]byte

// EncodeReadRequest builds a read-key request for a 4-character ASCII key.
func EncodeReadRequest(key string) (Buffer, error) {
	var b Buffer
	if len(key) != 4 {
		return b, fmt.Errorf("smc: key %q is not 4 characters", key)
	}
	for i := 0; i < 4; i++ {
		if key[i] > 0x7f {
			return b, fmt.Errorf("smc: key %q is not ASCII", key)
		}
	}
	copy(b[offKey:], key)
	b[offDataSize] = readDataSize
	b[offCommand] = cmdReadKey
	return b, nil
}

// RawValue extracts the big-endian 16-bit value from a response frame.
func RawValue(resp Buffer) uint16 {
	return binary.BigEndian.Uint16(resp[offData : offData+2])
}

// Decoder turns a raw register value into a reading, rejecting values
// outside the encoding's accepted range.
type Decoder func(raw uint16) (float64, bool)

// DecodeSP78 interprets raw as signed fixed-point /256 degrees C.
// Accepted range is (-10, 150).
func DecodeSP78(raw uint16) (float64, bool) {
	v := float64(int16(raw)) / 256
	if v <= -10 || v >= 150 {
		return 0, false
	}
	return v, true
}

// DecodeFPE2 interprets raw as unsigned fixed-point /4 RPM.
// Accepted range is (0, inf).
func DecodeFPE2(raw uint16) (float64, bool) {
	v := float64(raw) / 4
	if v <= 0 {
		return 0, false
	}
	return v, true
}
