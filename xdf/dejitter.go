package xdf

import "math"

// breakSegments splits [0, n-1] wherever the gap between consecutive
// stamps exceeds the break threshold (spec §4.6 step 1).
func breakSegments(stamps []float64, threshold float64, n int) []segment {
	if n == 0 {
		return nil
	}
	var segments []segment
	begin := 0
	for i := 1; i < n; i++ {
		if stamps[i]-stamps[i-1] > threshold {
			segments = append(segments, segment{begin, i - 1})
			begin = i
		}
	}
	segments = append(segments, segment{begin, n - 1})
	return segments
}

// dejitterTimestamps replaces stamps with per-segment least-squares
// refits against sample index (spec §4.6) for a regularly-sampled
// stream, in place, and returns the effective sampling rate aggregated
// across segments by sample-weighted mean.
//
// Irregularly-sampled streams (buf.srate == 0) are left untouched and
// report an effective rate of 0, matching spec §4.6's scope.
func dejitterTimestamps(buf *streamBuffer, stamps []float64, opts *Options) float64 {
	if buf.srate <= 0 || len(stamps) < 2 {
		return 0
	}

	threshold := math.Max(opts.JitterBreakThresholdSeconds, float64(opts.JitterBreakThresholdSamples)*buf.tdiff)
	segments := breakSegments(stamps, threshold, len(stamps))

	var rateNumerator, totalSamples float64
	for _, seg := range segments {
		n := seg.end - seg.begin + 1
		if n < 2 {
			continue
		}
		// r_i uses the original, pre-overwrite timestamps at the
		// segment's endpoints (spec §4.6 step 3), not the fitted line.
		origFirst, origLast := stamps[seg.begin], stamps[seg.end]

		design := make(design2, n)
		y := make([]float64, n)
		for k := 0; k < n; k++ {
			design[k] = [2]float64{1, float64(k)}
			y[k] = stamps[seg.begin+k]
		}
		m00, m01, m11 := design.ata()
		b0, b1 := design.aty(y)
		l00, l10, l11 := cholesky2x2(m00, m01, m11)
		a, b := solveCholesky2x2(l00, l10, l11, b0, b1)

		for k := 0; k < n; k++ {
			stamps[seg.begin+k] = a + b*float64(k)
		}

		// Aggregates by sample count rather than the original
		// reference's last-segment-wins accumulation.
		if span := origLast - origFirst; span > 0 {
			rateNumerator += (float64(n) / span) * float64(n)
			totalSamples += float64(n)
		}
	}

	if totalSamples == 0 {
		return buf.srate
	}
	return rateNumerator / totalSamples
}
