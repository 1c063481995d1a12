package xdf

// concatenate folds a streamBuffer's per-chunk timestamp/sample lists
// (accumulated in file order per spec §5) into flat slices, leaving an
// empty-but-correctly-shaped result for streams that never saw a
// Samples chunk (spec §3 invariant, §4.1 step 4).
func (b *streamBuffer) concatenate() (stamps []float64, numeric [][]float64, strings [][]string) {
	n := 0
	for _, chunk := range b.timestampChunks {
		n += len(chunk)
	}
	stamps = make([]float64, 0, n)
	for _, chunk := range b.timestampChunks {
		stamps = append(stamps, chunk...)
	}

	if b.fmt == FormatString {
		strings = make([][]string, 0, n)
		for _, chunk := range b.stringChunks {
			strings = append(strings, chunk...)
		}
	} else {
		numeric = make([][]float64, 0, n)
		for _, chunk := range b.numericChunks {
			numeric = append(numeric, chunk...)
		}
	}
	return stamps, numeric, strings
}

// finalizeStreams concatenates every buffer's chunks, runs clock
// synchronization and jitter removal as configured, and returns the
// streams in file order (spec §4.1 steps 4-5).
func finalizeStreams(state *decodeState, opts *Options) []*Stream {
	streams := make([]*Stream, 0, len(state.order))
	for _, id := range state.order {
		buf := state.buffers[id]
		stamps, numeric, strs := buf.concatenate()

		if opts.SyncClocks {
			syncClock(buf, stamps, opts)
		}

		effectiveSRate := 0.0
		if opts.Dejitter {
			effectiveSRate = dejitterTimestamps(buf, stamps, opts)
		} else if len(stamps) >= 2 && buf.srate > 0 {
			duration := stamps[len(stamps)-1] - stamps[0]
			if duration > 0 {
				effectiveSRate = float64(len(stamps)) / duration
			}
		}

		info := buf.info
		info.EffectiveSRate = effectiveSRate

		streams = append(streams, &Stream{
			ID:         id,
			Info:       info,
			TimeStamps: stamps,
			Numeric:    numeric,
			Strings:    strs,
		})
	}
	return streams
}
