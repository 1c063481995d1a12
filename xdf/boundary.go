package xdf

import (
	"bytes"
	"io"
)

// boundarySentinel is the 16-byte marker inserted between chunks to
// allow resynchronization after corruption (spec §2, §4.3).
var boundarySentinel = []byte{
	0x43, 0xA5, 0x46, 0xDC, 0xCB, 0xF5, 0x41, 0x0F,
	0xB3, 0x0E, 0xD5, 0x46, 0x73, 0x83, 0xCB, 0xE4,
}

const scanBlockSize = 1 << 20 // 1 MiB, per spec §4.3 recommendation

// scanForward seeks r forward past the next occurrence of
// boundarySentinel. It reads in scanBlockSize blocks, keeping the last
// 15 bytes of each block so a sentinel straddling a block boundary is
// still found (spec §9). It returns true if a match was found (the
// seeker is now positioned just past the sentinel's last byte, i.e.
// the next read starts a fresh chunk) or false if EOF was
// reached with no match, in which case the outer decode loop should
// terminate normally.
func scanForward(r io.ReadSeeker) (bool, error) {
	overlap := len(boundarySentinel) - 1

	carry := make([]byte, 0, overlap)
	block := make([]byte, scanBlockSize)

	// curPos is the file offset of the first byte of block; the
	// logical window (carry+block) starts len(carry) bytes earlier.
	curPos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	for {
		n, readErr := io.ReadFull(r, block)
		if n > 0 {
			window := append(carry, block[:n]...)
			if idx := bytes.Index(window, boundarySentinel); idx != -1 {
				// idx is relative to window, whose first byte is at
				// file offset curPos-len(carry).
				matchFileOffset := curPos - int64(len(carry)) + int64(idx)
				if _, err := r.Seek(matchFileOffset+int64(len(boundarySentinel)), io.SeekStart); err != nil {
					return false, err
				}
				return true, nil
			}
			if len(window) > overlap {
				carry = append(carry[:0], window[len(window)-overlap:]...)
			} else {
				carry = append(carry[:0], window...)
			}
			curPos += int64(n)
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return false, nil
		}
		if readErr != nil {
			return false, readErr
		}
	}
}
