package xdf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// decodeSamples implements the Sample Decoder (spec §4.2): it reads
// nsamples, then each sample's (possibly delta-predicted) timestamp
// and its channel row, and returns them. buf.lastTimestamp carries
// the stream's running delta-decode state and is updated in place for
// the next Samples chunk of the same stream.
//
// maxSamples bounds nsamples against the chunk's own declared payload
// size: every sample consumes at least one byte (its has_stamp flag),
// so a count exceeding the bytes actually available is corrupt, not
// merely large. This rejects a truncated/garbled nsamples field with
// an ordinary error instead of letting make([]T, nsamples) panic or
// exhaust memory on a negative or wildly oversized value.
func decodeSamples(r io.Reader, buf *streamBuffer, maxSamples int64) ([]float64, []Sample, error) {
	nsamples64, err := readVarLenInt(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading nsamples: %w", err)
	}
	if maxSamples < 0 || nsamples64 > uint64(maxSamples) {
		return nil, nil, fmt.Errorf("implausible sample count %d (chunk has %d bytes remaining)", nsamples64, maxSamples)
	}
	nsamples := int(nsamples64)

	stamps := make([]float64, nsamples)
	samples := make([]Sample, nsamples)

	isString := buf.fmt == FormatString
	var sampleBytes int
	if !isString {
		sampleBytes = buf.nchns * buf.fmt.BytesPerSample()
	}

	for k := 0; k < nsamples; k++ {
		var hasStamp [1]byte
		if _, err := io.ReadFull(r, hasStamp[:]); err != nil {
			return nil, nil, fmt.Errorf("reading has_stamp for sample %d: %w", k, err)
		}
		if hasStamp[0] != 0 {
			stamp, err := readF64LE(r)
			if err != nil {
				return nil, nil, fmt.Errorf("reading explicit timestamp for sample %d: %w", k, err)
			}
			buf.lastTimestamp = stamp
		} else {
			buf.lastTimestamp = buf.lastTimestamp + buf.tdiff
		}
		stamps[k] = buf.lastTimestamp

		if isString {
			row := make([]string, buf.nchns)
			for ch := 0; ch < buf.nchns; ch++ {
				n, err := readVarLenInt(r)
				if err != nil {
					return nil, nil, fmt.Errorf("reading string length for sample %d channel %d: %w", k, ch, err)
				}
				raw, err := readBytes(r, int(n))
				if err != nil {
					return nil, nil, fmt.Errorf("reading string payload for sample %d channel %d: %w", k, ch, err)
				}
				row[ch] = decodeUTF8Lossy(raw)
			}
			samples[k] = Sample{Strings: row}
		} else {
			raw, err := readBytes(r, sampleBytes)
			if err != nil {
				return nil, nil, fmt.Errorf("reading channel values for sample %d: %w", k, err)
			}
			row, err := decodeNumericRow(raw, buf.fmt, buf.nchns)
			if err != nil {
				return nil, nil, err
			}
			samples[k] = Sample{Values: row}
		}
	}
	return stamps, samples, nil
}

// decodeUTF8Lossy decodes raw as UTF-8, replacing invalid sequences
// with U+FFFD (spec §4.2), matching Python's str.decode(errors='replace').
func decodeUTF8Lossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	out := make([]rune, 0, len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		out = append(out, r)
		raw = raw[size:]
	}
	return string(out)
}

// decodeNumericRow interprets raw as nchns little-endian values of the
// declared numeric format, widened to float64 (spec §3's note that a
// single dense matrix type is simpler than a typed union per stream).
func decodeNumericRow(raw []byte, fmtType ChannelFormat, nchns int) ([]float64, error) {
	row := make([]float64, nchns)
	switch fmtType {
	case FormatInt8:
		for i := 0; i < nchns; i++ {
			row[i] = float64(int8(raw[i]))
		}
	case FormatInt16:
		for i := 0; i < nchns; i++ {
			row[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:])))
		}
	case FormatInt32:
		for i := 0; i < nchns; i++ {
			row[i] = float64(int32(binary.LittleEndian.Uint32(raw[i*4:])))
		}
	case FormatInt64:
		for i := 0; i < nchns; i++ {
			row[i] = float64(int64(binary.LittleEndian.Uint64(raw[i*8:])))
		}
	case FormatFloat32:
		for i := 0; i < nchns; i++ {
			row[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
		}
	case FormatDouble64:
		for i := 0; i < nchns; i++ {
			row[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
	default:
		return nil, newErr(ErrUnknownChannelFormat, "decodeNumericRow", fmt.Errorf("format %v is not numeric", fmtType))
	}
	return row, nil
}
