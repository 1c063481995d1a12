package xdf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// readVarLenInt reads the XDF variable-length integer: a 1-byte count
// of length bytes (1, 4, or 8), followed by that many little-endian
// bytes. Any other count byte is a MalformedVarInt.
func readVarLenInt(r io.Reader) (uint64, error) {
	var nbytes [1]byte
	if _, err := io.ReadFull(r, nbytes[:]); err != nil {
		return 0, newErr(ErrUnexpectedEOF, "readVarLenInt: length-byte count", err)
	}
	switch nbytes[0] {
	case 1:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, newErr(ErrUnexpectedEOF, "readVarLenInt: 1-byte length", err)
		}
		return uint64(b[0]), nil
	case 4:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, newErr(ErrUnexpectedEOF, "readVarLenInt: 4-byte length", err)
		}
		return uint64(binary.LittleEndian.Uint32(b[:])), nil
	case 8:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, newErr(ErrUnexpectedEOF, "readVarLenInt: 8-byte length", err)
		}
		return binary.LittleEndian.Uint64(b[:]), nil
	default:
		return 0, newErr(ErrMalformedVarInt, "readVarLenInt", fmt.Errorf("invalid length-byte count %d", nbytes[0]))
	}
}

// readU16LE reads one little-endian uint16.
func readU16LE(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, newErr(ErrUnexpectedEOF, "readU16LE", err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// readU32LE reads one little-endian uint32.
func readU32LE(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, newErr(ErrUnexpectedEOF, "readU32LE", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// readF64LE reads one little-endian float64.
func readF64LE(r io.Reader) (float64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, newErr(ErrUnexpectedEOF, "readF64LE", err)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}

// readBytes reads exactly n raw bytes.
func readBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, newErr(ErrUnexpectedEOF, "readBytes", err)
	}
	return buf, nil
}
