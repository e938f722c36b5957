package brc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"onebrc/chunk"
	"onebrc/stats"
)

// ProcessRange streams r through a fixed line buffer and folds every line
// into a fresh map. A last line without a trailing '\n' is still counted.
func ProcessRange(ctx context.Context, r io.Reader, bufSize int) (stats.Map, int64, error) {
	records := make(stats.Map)
	buf := make([]byte, bufSize)

	var line [chunk.MaxLineLength]byte
	var lineLen int
	var lines int64

	for {
		if err := ctx.Err(); err != nil {
			return nil, lines, err
		}

		n, readErr := r.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				lines++
				if err := records.Accept(line[:lineLen]); err != nil {
					return nil, lines, fmt.Errorf("line %d: %w", lines, err)
				}
				lineLen = 0
				continue
			}
			if lineLen == len(line) {
				return nil, lines, fmt.Errorf("line %d: %w", lines+1, chunk.ErrLineTooLong)
			}
			line[lineLen] = b
			lineLen++
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, lines, fmt.Errorf("unable to read range: %w", readErr)
		}
	}

	if lineLen > 0 {
		lines++
		if err := records.Accept(line[:lineLen]); err != nil {
			return nil, lines, fmt.Errorf("line %d: %w", lines, err)
		}
	}
	return records, lines, nil
}
