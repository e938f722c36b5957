package brc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onebrc/chunk"
	"onebrc/stats"
)

const sample = "Oslo;1.0\nOslo;3.0\nLyon;-2.5\n"

func TestProcessRangeBufferSizes(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 64, DEFAULT_READ_BUFFER_SIZE} {
		m, lines, err := ProcessRange(context.Background(), strings.NewReader(sample), size)
		require.NoError(t, err, size)
		assert.Equal(t, int64(3), lines, size)
		assert.Equal(t, "{Lyon=-2.5/-2.5/-2.5, Oslo=1.0/2.0/3.0}", stats.Format(m), size)
	}
}

func TestProcessRangeUnterminatedLastLine(t *testing.T) {
	m, lines, err := ProcessRange(context.Background(), strings.NewReader("Oslo;1.0\nOslo;3.0"), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), lines)
	assert.Equal(t, int64(2), m["Oslo"].Count)
	assert.Equal(t, 3.0, m["Oslo"].Max)
}

func TestProcessRangeSkipsBlankLines(t *testing.T) {
	m, lines, err := ProcessRange(context.Background(), strings.NewReader("\n\nA;1.0\n\nab\nA;2.0\n"), 16)
	require.NoError(t, err)
	assert.Equal(t, int64(6), lines)
	require.Len(t, m, 1)
	assert.Equal(t, stats.Aggregate{Min: 1, Max: 2, Avg: 1.5, Count: 2}, *m["A"])
}

func TestProcessRangeMaximalLine(t *testing.T) {
	line := strings.Repeat("k", chunk.MaxLineLength-4) + ";1.5"
	m, _, err := ProcessRange(context.Background(), strings.NewReader(line+"\n"+line), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), m[line[:chunk.MaxLineLength-4]].Count)
}

func TestProcessRangeLineTooLong(t *testing.T) {
	line := strings.Repeat("k", chunk.MaxLineLength) + ";1.5\n"
	_, _, err := ProcessRange(context.Background(), strings.NewReader(line), 32)
	require.Error(t, err)
	assert.True(t, errors.Is(err, chunk.ErrLineTooLong))
}

func TestProcessRangeMalformedRecord(t *testing.T) {
	m, _, err := ProcessRange(context.Background(), strings.NewReader("Oslo;1.0\nOslo;x\n"), 8)
	require.Error(t, err)
	assert.Nil(t, m)

	var recErr *stats.RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, "Oslo;x", recErr.Line)
	assert.Contains(t, err.Error(), "line 2")
}

func TestProcessRangeReadError(t *testing.T) {
	errDisk := errors.New("disk on fire")
	_, _, err := ProcessRange(context.Background(), iotest.ErrReader(errDisk), 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDisk))
}

func TestProcessRangeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ProcessRange(ctx, strings.NewReader(sample), 8)
	assert.True(t, errors.Is(err, context.Canceled))
}

// Splitting the input at any line boundary and merging the two halves
// renders the same summary as a single pass.
func TestProcessRangeSplitAnywhere(t *testing.T) {
	input := sample + "Oslo;-4.2\nLyon;9.9\nRome;0.0\nLyon;-2.5\n"

	whole, _, err := ProcessRange(context.Background(), strings.NewReader(input), 16)
	require.NoError(t, err)
	want := stats.Format(whole)

	for k := 1; k < len(input); k++ {
		if input[k-1] != '\n' {
			continue
		}
		left, _, err := ProcessRange(context.Background(), strings.NewReader(input[:k]), 16)
		require.NoError(t, err)
		right, _, err := ProcessRange(context.Background(), strings.NewReader(input[k:]), 16)
		require.NoError(t, err)

		assert.Equal(t, want, stats.Format(stats.Merge(left, right)), "split at %d", k)
	}
}
