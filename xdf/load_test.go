package xdf

import (
	"math"
	"testing"
)

func noOpts() Options {
	o := DefaultOptions()
	o.SyncClocks = false
	o.Dejitter = false
	o.HandleResets = false
	return o
}

// TestLoad_DeltaDecoding covers spec §8 scenario 6: five samples, only
// the first carries an explicit timestamp, the rest delta-predicted by
// tdiff = 1/srate.
func TestLoad_DeltaDecoding(t *testing.T) {
	w := &testWriter{}
	w.streamHeader(1, "test", "EEG", 1, 100, "double64")

	stamps := []float64{10.0, 0, 0, 0, 0}
	explicit := []bool{true, false, false, false, false}
	rows := [][]float64{{1}, {2}, {3}, {4}, {5}}
	w.samplesChunkFloat(1, stamps, explicit, rows)

	result, err := Load(asReadSeeker(w.bytes()), noOpts())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Streams) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(result.Streams))
	}
	s := result.Streams[0]
	want := []float64{10.00, 10.01, 10.02, 10.03, 10.04}
	if s.NumSamples() != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), s.NumSamples())
	}
	for i, w := range want {
		if math.Abs(s.TimeStamps[i]-w) > 1e-9 {
			t.Errorf("stamp %d: got %v, want %v", i, s.TimeStamps[i], w)
		}
	}
}

// TestLoad_ClockOffsetApplied covers the single-segment clock-sync
// path: one ClockOffset measurement applied as a constant shift.
func TestLoad_ClockOffsetApplied(t *testing.T) {
	w := &testWriter{}
	w.streamHeader(1, "test", "EEG", 1, 10, "double64")
	stamps := []float64{0, 1, 2}
	explicit := []bool{true, true, true}
	rows := [][]float64{{1}, {2}, {3}}
	w.samplesChunkFloat(1, stamps, explicit, rows)
	w.clockOffset(1, 0, 5.0)

	opts := DefaultOptions()
	opts.Dejitter = false
	result, err := Load(asReadSeeker(w.bytes()), opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := result.Streams[0]
	for i, v := range s.TimeStamps {
		want := float64(i) + 5.0
		if math.Abs(v-want) > 1e-6 {
			t.Errorf("stamp %d: got %v, want %v", i, v, want)
		}
	}
}

// TestLoad_UnknownChunkSkipped verifies an unrecognized tag is skipped
// without aborting the decode (spec §4.1 default branch).
func TestLoad_UnknownChunkSkipped(t *testing.T) {
	w := &testWriter{}
	w.chunk(99, []byte{1, 2, 3, 4})
	w.streamHeader(1, "test", "EEG", 1, 10, "double64")
	stamps := []float64{0}
	explicit := []bool{true}
	rows := [][]float64{{1}}
	w.samplesChunkFloat(1, stamps, explicit, rows)

	result, err := Load(asReadSeeker(w.bytes()), noOpts())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Streams) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(result.Streams))
	}
}

// TestLoad_BadMagic verifies the file-magic check.
func TestLoad_BadMagic(t *testing.T) {
	bad := []byte("NOPE")
	_, err := Load(asReadSeeker(bad), DefaultOptions())
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	var xerr *Error
	if !asError(err, &xerr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if xerr.Kind != ErrBadMagic {
		t.Errorf("expected ErrBadMagic, got %v", xerr.Kind)
	}
}

// TestLoad_TruncatedResync covers spec §8 scenario 5: a corrupted
// Samples chunk followed by a boundary sentinel and a fresh, valid
// stream header should resynchronize rather than abort.
func TestLoad_TruncatedResync(t *testing.T) {
	w := &testWriter{}
	w.streamHeader(1, "broken", "EEG", 1, 10, "double64")

	// A malformed Samples chunk: its nsamples varint starts with an
	// invalid length byte (0xFF), which surfaces as a decode error and
	// triggers scanForward.
	w.chunk(tagSamples, []byte{1, 0, 0, 0, 0xFF})

	w.buf.Write(boundarySentinel)
	w.streamHeader(2, "recovered", "EEG", 1, 10, "double64")
	stamps := []float64{0}
	explicit := []bool{true}
	rows := [][]float64{{42}}
	w.samplesChunkFloat(2, stamps, explicit, rows)

	result, err := Load(asReadSeeker(w.bytes()), noOpts())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	found := false
	for _, s := range result.Streams {
		if s.Info.Name == "recovered" {
			found = true
			if s.NumSamples() != 1 {
				t.Errorf("expected 1 sample, got %d", s.NumSamples())
			}
		}
	}
	if !found {
		t.Fatal("expected recovered stream after resync")
	}
}

func asError(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}
