package xdf

import "math"

// SyncTimestamps resamples every stream in streams onto a single
// uniform grid spanning the earliest first timestamp and latest last
// timestamp of any stream, sampled at the fastest regular stream's
// rate (spec §4.7). Numeric channels are linearly interpolated within
// each stream's own original span and set to NaN outside it;
// integer-typed channels round to the nearest integer after
// interpolation. String (marker) channels start as all-empty and have
// each original value snapped onto its nearest grid point.
//
// If no stream has a positive effective sampling rate, streams is
// returned unchanged: there is no regular stream to derive a grid
// from.
func SyncTimestamps(streams []*Stream) []*Stream {
	var master *Stream
	for _, s := range streams {
		if s.Info.EffectiveSRate <= 0 || s.NumSamples() < 2 {
			continue
		}
		if master == nil || s.Info.EffectiveSRate > master.Info.EffectiveSRate {
			master = s
		}
	}
	if master == nil {
		return streams
	}

	tFirst, tLast := math.Inf(1), math.Inf(-1)
	for _, s := range streams {
		if s.NumSamples() == 0 {
			continue
		}
		if f := s.TimeStamps[0]; f < tFirst {
			tFirst = f
		}
		if l := s.TimeStamps[s.NumSamples()-1]; l > tLast {
			tLast = l
		}
	}

	step := 1 / master.Info.EffectiveSRate
	n := int(math.Round((tLast-tFirst)/step)) + 1
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = tFirst + float64(i)*step
	}

	out := make([]*Stream, len(streams))
	for i, s := range streams {
		out[i] = expandOnto(s, grid)
	}
	return out
}

// expandOnto builds a new Stream sharing grid as its TimeStamps, with
// s's data resampled onto it per the rules described on SyncTimestamps.
func expandOnto(s *Stream, grid []float64) *Stream {
	info := s.Info
	result := &Stream{ID: s.ID, Info: info, TimeStamps: grid}

	if s.NumSamples() == 0 {
		if s.Strings != nil {
			result.Strings = make([][]string, len(grid))
			for i := range result.Strings {
				result.Strings[i] = make([]string, info.ChannelCount)
			}
		} else {
			result.Numeric = make([][]float64, len(grid))
			for i := range result.Numeric {
				row := make([]float64, info.ChannelCount)
				for c := range row {
					row[c] = math.NaN()
				}
				result.Numeric[i] = row
			}
		}
		return result
	}

	if s.Strings != nil {
		rows := make([][]string, len(grid))
		for i := range rows {
			rows[i] = make([]string, info.ChannelCount)
		}
		for origIdx, t := range s.TimeStamps {
			gi := nearestGridIndex(grid, t)
			rows[gi] = s.Strings[origIdx]
		}
		result.Strings = rows
		return result
	}

	lo, hi := s.TimeStamps[0], s.TimeStamps[s.NumSamples()-1]
	integerValued := s.Info.ChannelFormat.IsInteger()
	nchns := info.ChannelCount
	rows := make([][]float64, len(grid))
	for i, g := range grid {
		row := make([]float64, nchns)
		if g < lo || g > hi {
			for c := range row {
				row[c] = math.NaN()
			}
			rows[i] = row
			continue
		}
		a, b, frac := bracket(s.TimeStamps, g)
		for c := 0; c < nchns; c++ {
			v := s.Numeric[a][c] + frac*(s.Numeric[b][c]-s.Numeric[a][c])
			if integerValued {
				v = math.Round(v)
			}
			row[c] = v
		}
		rows[i] = row
	}
	result.Numeric = rows
	return result
}

// nearestGridIndex returns the index into grid closest to t.
func nearestGridIndex(grid []float64, t float64) int {
	lo, hi, _ := bracketIndices(grid, t)
	if hi == lo {
		return lo
	}
	if t-grid[lo] <= grid[hi]-t {
		return lo
	}
	return hi
}

// bracket returns the indices straddling t in stamps and the
// interpolation fraction between them.
func bracket(stamps []float64, t float64) (lo, hi int, frac float64) {
	lo, hi, _ = bracketIndices(stamps, t)
	if hi == lo {
		return lo, hi, 0
	}
	frac = (t - stamps[lo]) / (stamps[hi] - stamps[lo])
	return
}

func bracketIndices(stamps []float64, t float64) (lo, hi int, _ bool) {
	n := len(stamps)
	if t <= stamps[0] {
		return 0, 0, true
	}
	if t >= stamps[n-1] {
		return n - 1, n - 1, true
	}
	i := 0
	for i < n-1 && stamps[i+1] < t {
		i++
	}
	return i, i + 1, false
}

// LimitToOverlap restricts every stream to the temporal intersection
// of all streams' original time spans (spec §4.7): t_lo is the latest
// of all streams' first timestamps, t_hi the earliest of all streams'
// last timestamps. For numeric streams, leading and trailing all-NaN
// rows (the extrapolated rows SyncTimestamps adds) do not count as
// part of the original span. Numeric streams are sliced by index;
// string streams are sliced by the same temporal predicate.
func LimitToOverlap(streams []*Stream) []*Stream {
	tLo, tHi := math.Inf(-1), math.Inf(1)
	any := false
	for _, s := range streams {
		first, last := 0, s.NumSamples()-1
		if s.Strings == nil {
			for first <= last && len(s.Numeric[first]) > 0 && math.IsNaN(s.Numeric[first][0]) {
				first++
			}
			for last >= first && len(s.Numeric[last]) > 0 && math.IsNaN(s.Numeric[last][0]) {
				last--
			}
		}
		if first > last {
			continue
		}
		any = true
		if f := s.TimeStamps[first]; f > tLo {
			tLo = f
		}
		if l := s.TimeStamps[last]; l < tHi {
			tHi = l
		}
	}
	if !any {
		return streams
	}

	out := make([]*Stream, len(streams))
	for i, s := range streams {
		begin, end := 0, s.NumSamples()
		for begin < end && s.TimeStamps[begin] < tLo {
			begin++
		}
		for end > begin && s.TimeStamps[end-1] > tHi {
			end--
		}

		info := s.Info
		result := &Stream{ID: s.ID, Info: info, TimeStamps: append([]float64(nil), s.TimeStamps[begin:end]...)}
		if s.Strings != nil {
			result.Strings = append([][]string(nil), s.Strings[begin:end]...)
		} else {
			result.Numeric = append([][]float64(nil), s.Numeric[begin:end]...)
		}
		out[i] = result
	}
	return out
}
