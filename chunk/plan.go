package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	// MaxLineLength is the longest line, without its '\n', the input may hold.
	MaxLineLength = 128

	// slack pushes each proposed boundary a little past the even share.
	slack = 100
)

var ErrLineTooLong = fmt.Errorf("line exceeds %d bytes", MaxLineLength)

// Range is the byte range [Start, End) of the input.
type Range struct {
	Start int64
	End   int64
}

func (r Range) Len() int64 {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Plan splits the first size bytes of r into contiguous ranges of roughly
// size/workers bytes. Every range except the last ends right after a '\n',
// so no line is shared between two ranges.
func Plan(r io.ReaderAt, size int64, workers int) ([]Range, error) {
	if workers < 1 {
		return nil, fmt.Errorf("invalid worker count %d", workers)
	}

	target := size / int64(workers)
	window := make([]byte, MaxLineLength+1)

	var ranges []Range
	var last int64
	for last < size {
		end := min(size, last+slack+target)
		if end < size {
			next, err := nextLineStart(r, end, size, window)
			if err != nil {
				return nil, err
			}
			end = next
		}
		ranges = append(ranges, Range{Start: last, End: end})
		last = end
	}
	return ranges, nil
}

// nextLineStart returns the offset just past the first '\n' at or after
// off. A final line without a trailing '\n' runs to size.
func nextLineStart(r io.ReaderAt, off, size int64, window []byte) (int64, error) {
	want := min(int64(len(window)), size-off)
	n, err := r.ReadAt(window[:want], off)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("unable to read boundary window at offset %d: %w", off, err)
	}
	if i := bytes.IndexByte(window[:n], '\n'); i >= 0 {
		return off + int64(i) + 1, nil
	}
	if int64(n) < want {
		return 0, fmt.Errorf("unable to read boundary window at offset %d: %w", off, io.ErrUnexpectedEOF)
	}
	if off+want == size {
		return size, nil
	}
	return 0, fmt.Errorf("no line break in %d bytes at offset %d: %w", n, off, ErrLineTooLong)
}
