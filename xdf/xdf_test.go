package xdf

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
)

// The helpers below build synthetic XDF byte streams for tests. There
// is no public writer in this package (spec's non-goals exclude
// writing XDF); these exist purely to exercise the decoder.

type testWriter struct {
	buf bytes.Buffer
}

func (w *testWriter) varlen(n uint64) {
	switch {
	case n < 256:
		w.buf.WriteByte(1)
		w.buf.WriteByte(byte(n))
	case n <= math.MaxUint32:
		w.buf.WriteByte(4)
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(n))
		w.buf.Write(b[:])
	default:
		w.buf.WriteByte(8)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], n)
		w.buf.Write(b[:])
	}
}

func (w *testWriter) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *testWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *testWriter) f64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

// chunk writes a complete chunk: varlen(len(tag)+len(payload)), tag, payload.
func (w *testWriter) chunk(tag uint16, payload []byte) {
	w.varlen(uint64(2 + len(payload)))
	w.u16(tag)
	w.buf.Write(payload)
}

func streamHeaderXML(name, typ string, nchns int, srate float64, format string) string {
	return "<info><name>" + name + "</name><type>" + typ + "</type>" +
		"<channel_count>" + strconv.Itoa(nchns) + "</channel_count>" +
		"<nominal_srate>" + strconv.FormatFloat(srate, 'f', -1, 64) + "</nominal_srate>" +
		"<channel_format>" + format + "</channel_format></info>"
}

func (w *testWriter) streamHeader(id uint32, name, typ string, nchns int, srate float64, format string) {
	var p bytes.Buffer
	var idb [4]byte
	binary.LittleEndian.PutUint32(idb[:], id)
	p.Write(idb[:])
	p.WriteString(streamHeaderXML(name, typ, nchns, srate, format))
	w.chunk(tagStreamHeader, p.Bytes())
}

// samplesChunkFloat writes a Samples chunk for a double64-formatted
// stream. Sample i carries stamps[i] explicitly (has_stamp=1) when
// explicit[i] is true; otherwise it is delta-predicted (has_stamp=0)
// and stamps[i] is not written.
func (w *testWriter) samplesChunkFloat(id uint32, stamps []float64, explicit []bool, rows [][]float64) {
	var p bytes.Buffer
	var idb [4]byte
	binary.LittleEndian.PutUint32(idb[:], id)
	p.Write(idb[:])

	nw := &testWriter{}
	nw.varlen(uint64(len(stamps)))
	for i := range stamps {
		if explicit[i] {
			nw.buf.WriteByte(1)
			nw.f64(stamps[i])
		} else {
			nw.buf.WriteByte(0)
		}
		for _, v := range rows[i] {
			nw.f64(v)
		}
	}
	p.Write(nw.buf.Bytes())
	w.chunk(tagSamples, p.Bytes())
}

func (w *testWriter) clockOffset(id uint32, collectionTime, offset float64) {
	var p bytes.Buffer
	var idb [4]byte
	binary.LittleEndian.PutUint32(idb[:], id)
	p.Write(idb[:])
	var t, o [8]byte
	binary.LittleEndian.PutUint64(t[:], math.Float64bits(collectionTime))
	binary.LittleEndian.PutUint64(o[:], math.Float64bits(offset))
	p.Write(t[:])
	p.Write(o[:])
	w.chunk(tagClockOffset, p.Bytes())
}

func (w *testWriter) fileHeader(xml string) {
	w.chunk(tagFileHeader, []byte(xml))
}

func (w *testWriter) bytes() []byte {
	var out bytes.Buffer
	out.WriteString("XDF:")
	out.Write(w.buf.Bytes())
	return out.Bytes()
}

func asReadSeeker(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
