package xdf

// segment is an inclusive [begin, end] index range, used both for
// clock-offset reset segments (spec §4.4) and jitter-removal break
// segments (spec §4.6).
type segment struct {
	begin, end int
}

// detectGlitches marks indices i of diffs where diffs[i] deviates from
// the distribution by more than the given std/seconds thresholds, or
// is negative outright (spec §4.4 step 3).
func detectGlitches(diffs []float64, thresholdStds, thresholdSeconds float64) []bool {
	med := median(diffs)
	m := mad(diffs, med) + machineEpsilon
	glitch := make([]bool, len(diffs))
	for i, d := range diffs {
		if d < 0 {
			glitch[i] = true
			continue
		}
		cond2 := (d-med)/m > thresholdStds
		cond3 := d-med > thresholdSeconds
		glitch[i] = cond2 && cond3
	}
	return glitch
}

// segmentsFromResets splits [0, n-1] around the indices where resetAt
// is true: a reset at dt-index i falls between array indices i and
// i+1, ending one segment at i and starting the next at i+1 (spec
// §4.4 step 4).
func segmentsFromResets(resetAt []bool, n int) []segment {
	if n == 0 {
		return nil
	}
	var segments []segment
	begin := 0
	for i, r := range resetAt {
		if r {
			segments = append(segments, segment{begin, i})
			begin = i + 1
		}
	}
	segments = append(segments, segment{begin, n - 1})
	return segments
}

// syncClock applies the Clock Synchronizer (spec §4.4) to stamps in
// place, using buf's accumulated clock-offset measurements.
func syncClock(buf *streamBuffer, stamps []float64, opts *Options) {
	if len(stamps) == 0 || len(buf.clockTimes) == 0 {
		return
	}

	t := buf.clockTimes
	v := buf.clockValues

	var segments []segment
	if len(t) == 1 {
		segments = []segment{{0, 0}}
	} else if opts.HandleResets {
		dt := diff(t)
		dv := absAll(diff(v))
		timeGlitch := detectGlitches(dt, opts.ClockResetThresholdStds, opts.ClockResetThresholdSeconds)
		valueGlitch := detectGlitches(dv, opts.ClockResetThresholdOffsetStds, opts.ClockResetThresholdOffsetSeconds)
		resetAt := make([]bool, len(dt))
		for i := range dt {
			resetAt[i] = timeGlitch[i] && valueGlitch[i]
		}
		segments = segmentsFromResets(resetAt, len(t))
	} else {
		segments = []segment{{0, len(t) - 1}}
	}

	type coef struct{ a, b float64 }
	coefs := make([]coef, len(segments))
	for i, seg := range segments {
		if seg.begin == seg.end {
			coefs[i] = coef{v[seg.begin], 0}
			continue
		}
		n := seg.end - seg.begin + 1
		design := make(design2, n)
		y := make([]float64, n)
		for k := 0; k < n; k++ {
			design[k] = [2]float64{1 / opts.WinsorThreshold, t[seg.begin+k] / opts.WinsorThreshold}
			y[k] = v[seg.begin+k] / opts.WinsorThreshold
		}
		a, b := robustFit(design, y)
		coefs[i] = coef{a, b}
	}

	// Apply each segment's affine correction to the same index range
	// of the stream's sample timestamps (spec §4.4 step 6; §9 notes
	// this intentionally keeps the inclusive range, unlike the
	// original's half-open slice).
	if len(segments) == 1 {
		c := coefs[0]
		for i := range stamps {
			stamps[i] += c.a + c.b*stamps[i]
		}
		return
	}
	for i, seg := range segments {
		c := coefs[i]
		end := seg.end
		if end > len(stamps)-1 {
			end = len(stamps) - 1
		}
		if seg.begin > end {
			continue
		}
		for k := seg.begin; k <= end; k++ {
			stamps[k] += c.a + c.b*stamps[k]
		}
	}
}
