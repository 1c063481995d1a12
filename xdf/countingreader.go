package xdf

import "io"

// countingReader wraps an io.Reader and tracks how many bytes have
// been read through it, used to check a Samples chunk's declared
// length against what was actually consumed (spec §7:
// InconsistentChunk).
type countingReader struct {
	r io.Reader
	n int64
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{r: r}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
