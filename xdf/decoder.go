package xdf

import (
	"fmt"
	"io"
)

const (
	tagFileHeader   = 1
	tagStreamHeader = 2
	tagSamples      = 3
	tagClockOffset  = 4
	tagStreamFooter = 6
)

// resyncSlackBytes is the spec §4.1 step 2 threshold: a chunklen read
// failure closer than this to EOF terminates normally rather than
// triggering a boundary scan (truncation at the very end of a
// well-formed file is the common case, not corruption).
const resyncSlackBytes = 1024

// decodeState holds the Chunk Decoder's in-progress state (spec §4.1,
// §5): the per-stream buffers, in file order of first appearance, plus
// the flattened file header once seen.
type decodeState struct {
	order      []uint32
	buffers    map[uint32]*streamBuffer
	fileHeader map[string]string
}

func newDecodeState() *decodeState {
	return &decodeState{
		buffers:    make(map[uint32]*streamBuffer),
		fileHeader: make(map[string]string),
	}
}

func (d *decodeState) bufferFor(id uint32) (*streamBuffer, bool) {
	b, ok := d.buffers[id]
	return b, ok
}

// decodeChunks runs the top-level chunk loop of spec §4.1 against r,
// which must already be positioned just past the "XDF:" magic.
func decodeChunks(r io.ReadSeeker, fileSize int64, opts *Options, state *decodeState) error {
	for {
		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}

		chunklen, err := readVarLenInt(r)
		if err != nil {
			if pos < fileSize-resyncSlackBytes {
				opts.logf("xdf: chunk length read failed at offset %d (%v), scanning forward to next boundary", pos, err)
				found, serr := scanForward(r)
				if serr != nil {
					return serr
				}
				if !found {
					opts.logf("xdf: scan forward reached end of file with no match")
					return nil
				}
				opts.logf("xdf: scan forward found a boundary chunk")
				continue
			}
			opts.logf("xdf: reached end of file")
			return nil
		}

		tag, err := readU16LE(r)
		if err != nil {
			// Truncated right after a length prefix: nothing useful
			// left to resynchronize on; stop with what we have.
			opts.logf("xdf: truncated tag at offset %d, stopping", pos)
			return nil
		}
		opts.logf("xdf: read tag %d at offset %d, length=%d", tag, pos, chunklen)

		switch tag {
		case tagFileHeader:
			if err := decodeFileHeader(r, int(chunklen)-2, state); err != nil {
				return err
			}
		case tagStreamHeader:
			if err := decodeStreamHeader(r, int(chunklen)-6, state); err != nil {
				return err
			}
		case tagSamples:
			if err := decodeSamplesChunk(r, int(chunklen)-6, opts, state); err != nil {
				opts.logf("xdf: error decoding samples chunk (%v), scanning forward to next boundary", err)
				found, serr := scanForward(r)
				if serr != nil {
					return serr
				}
				if !found {
					opts.logf("xdf: scan forward reached end of file with no match")
					return nil
				}
			}
		case tagClockOffset:
			if err := decodeClockOffset(r, state); err != nil {
				return err
			}
		case tagStreamFooter:
			if err := decodeStreamFooter(r, int(chunklen)-6, state); err != nil {
				return err
			}
		default:
			if _, err := io.CopyN(io.Discard, r, int64(chunklen)-2); err != nil {
				return newErr(ErrUnexpectedEOF, "skipping unknown chunk", err)
			}
		}
	}
}

func decodeFileHeader(r io.Reader, payloadLen int, state *decodeState) error {
	if payloadLen < 0 {
		return newErr(ErrInconsistentChunk, "decodeFileHeader", fmt.Errorf("negative payload length %d", payloadLen))
	}
	raw, err := readBytes(r, payloadLen)
	if err != nil {
		return err
	}
	tree, err := parseXMLTree(raw)
	if err != nil {
		return fmt.Errorf("decoding FileHeader: %w", err)
	}
	state.fileHeader = flattenDict(tree)
	return nil
}

func decodeStreamHeader(r io.Reader, payloadLen int, state *decodeState) error {
	id, err := readU32LE(r)
	if err != nil {
		return err
	}
	if payloadLen < 0 {
		return newErr(ErrInconsistentChunk, "decodeStreamHeader", fmt.Errorf("negative payload length %d", payloadLen))
	}
	raw, err := readBytes(r, payloadLen)
	if err != nil {
		return err
	}
	tree, err := parseXMLTree(raw)
	if err != nil {
		return fmt.Errorf("decoding StreamHeader for stream %d: %w", id, err)
	}
	info, err := parseStreamInfo(tree)
	if err != nil {
		return fmt.Errorf("decoding StreamHeader for stream %d: %w", id, err)
	}
	if _, seen := state.buffers[id]; !seen {
		state.order = append(state.order, id)
	}
	state.buffers[id] = newStreamBuffer(id, info)
	return nil
}

func decodeSamplesChunk(r io.Reader, payloadLen int, opts *Options, state *decodeState) error {
	id, err := readU32LE(r)
	if err != nil {
		return err
	}
	cr := newCountingReader(r)
	buf, ok := state.bufferFor(id)
	if !ok {
		// Samples for a stream we never saw a header for: skip the
		// remaining declared payload and move on rather than fail the
		// whole decode.
		if payloadLen > 0 {
			io.CopyN(io.Discard, r, int64(payloadLen))
		}
		return nil
	}

	stamps, samples, err := decodeSamples(cr, buf, int64(payloadLen))
	if err != nil {
		return newErr(ErrDecodeFailure, "decodeSamplesChunk", err)
	}
	if int64(payloadLen) != cr.n {
		return newErr(ErrInconsistentChunk, "decodeSamplesChunk",
			fmt.Errorf("declared payload %d bytes, consumed %d", payloadLen, cr.n))
	}

	if opts.OnChunk != nil {
		newSamples, newStamps, newInfo := opts.OnChunk(samples, stamps, buf.info, id)
		samples, stamps, buf.info = newSamples, newStamps, newInfo
	}

	buf.timestampChunks = append(buf.timestampChunks, stamps)
	if buf.fmt == FormatString {
		rows := make([][]string, len(samples))
		for i, s := range samples {
			rows[i] = s.Strings
		}
		buf.stringChunks = append(buf.stringChunks, rows)
	} else {
		rows := make([][]float64, len(samples))
		for i, s := range samples {
			rows[i] = s.Values
		}
		buf.numericChunks = append(buf.numericChunks, rows)
	}
	return nil
}

func decodeClockOffset(r io.Reader, state *decodeState) error {
	id, err := readU32LE(r)
	if err != nil {
		return err
	}
	collectionTime, err := readF64LE(r)
	if err != nil {
		return err
	}
	offsetValue, err := readF64LE(r)
	if err != nil {
		return err
	}
	buf, ok := state.bufferFor(id)
	if !ok {
		return nil
	}
	buf.clockTimes = append(buf.clockTimes, collectionTime)
	buf.clockValues = append(buf.clockValues, offsetValue)
	return nil
}

func decodeStreamFooter(r io.Reader, payloadLen int, state *decodeState) error {
	id, err := readU32LE(r)
	if err != nil {
		return err
	}
	if payloadLen < 0 {
		return newErr(ErrInconsistentChunk, "decodeStreamFooter", fmt.Errorf("negative payload length %d", payloadLen))
	}
	raw, err := readBytes(r, payloadLen)
	if err != nil {
		return err
	}
	tree, err := parseXMLTree(raw)
	if err != nil {
		return fmt.Errorf("decoding StreamFooter for stream %d: %w", id, err)
	}
	if buf, ok := state.bufferFor(id); ok {
		buf.info.Footer = tree
	}
	return nil
}
