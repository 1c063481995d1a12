package xdf

import "log"

// OnChunkFunc is the optional per-chunk transform hook of spec §4.1:
// it is called after a Samples chunk is decoded and may return
// modified values/stamps/info to be buffered in place of the decoded
// ones.
type OnChunkFunc func(values []Sample, stamps []float64, info StreamInfo, streamID uint32) ([]Sample, []float64, StreamInfo)

// Logger is the external collaborator for verbose diagnostics (spec
// §1: "logging/verbose printing" is explicitly out of the core's
// scope beyond this interface). The default implementation wraps the
// standard library log package, matching the teacher's own
// never-import-a-logging-library texture.
type Logger interface {
	Printf(format string, args ...any)
}

type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) {
	log.Printf(format, args...)
}

// Options controls a Load call. See spec §6 for field semantics and
// defaults.
type Options struct {
	OnChunk      OnChunkFunc
	Verbose      bool
	Logger       Logger
	SyncClocks   bool
	HandleResets bool
	Dejitter     bool

	JitterBreakThresholdSeconds float64
	JitterBreakThresholdSamples int64

	ClockResetThresholdSeconds       float64
	ClockResetThresholdStds          float64
	ClockResetThresholdOffsetSeconds float64
	ClockResetThresholdOffsetStds    float64

	WinsorThreshold float64
}

// DefaultOptions returns the spec §6 defaults.
func DefaultOptions() Options {
	return Options{
		Verbose:                          false,
		SyncClocks:                       true,
		HandleResets:                     true,
		Dejitter:                         true,
		JitterBreakThresholdSeconds:      1.0,
		JitterBreakThresholdSamples:      500,
		ClockResetThresholdSeconds:       5.0,
		ClockResetThresholdStds:          5.0,
		ClockResetThresholdOffsetSeconds: 1.0,
		ClockResetThresholdOffsetStds:    10.0,
		WinsorThreshold:                  1e-4,
	}
}

func (o *Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return stdLogger{}
}

func (o *Options) logf(format string, args ...any) {
	if o.Verbose {
		o.logger().Printf(format, args...)
	}
}
