package xdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

var magic = []byte("XDF:")

// Load reads a complete XDF container from r and returns its streams
// in file order, with clock synchronization and jitter removal applied
// as configured by opts (spec §4.1-§4.6).
func Load(r io.ReadSeeker, opts Options) (*Result, error) {
	fileSize, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("xdf: determining file size: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("xdf: seeking to start: %w", err)
	}

	got := make([]byte, len(magic))
	if _, err := io.ReadFull(r, got); err != nil {
		return nil, newErr(ErrBadMagic, "Load", fmt.Errorf("reading magic: %w", err))
	}
	if !bytes.Equal(got, magic) {
		return nil, newErr(ErrBadMagic, "Load", fmt.Errorf("got %q, want %q", got, magic))
	}

	state := newDecodeState()
	if err := decodeChunks(r, fileSize, &opts, state); err != nil {
		return nil, fmt.Errorf("xdf: decoding chunks: %w", err)
	}

	streams := finalizeStreams(state, &opts)
	return &Result{Streams: streams, FileHeader: state.fileHeader}, nil
}

// LoadFile opens path and loads it as an XDF container (spec §4.1).
func LoadFile(path string, opts Options) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newErr(ErrFileNotFound, "LoadFile", err)
		}
		return nil, fmt.Errorf("xdf: opening %s: %w", path, err)
	}
	defer file.Close()

	return Load(file, opts)
}
