package gen

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onebrc/chunk"
	"onebrc/stats"
)

func TestWriteProducesValidRecords(t *testing.T) {
	g, err := New(7, DefaultStations)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf, 5000))

	known := make(map[string]bool)
	for _, s := range DefaultStations {
		known[s.Name] = true
	}

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		lines++
		line := scanner.Bytes()
		require.LessOrEqual(t, len(line), chunk.MaxLineLength)

		key, v, ok, err := stats.ParseRecord(line)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, known[string(key)], string(key))
		assert.GreaterOrEqual(t, v, MIN_TEMP)
		assert.LessOrEqual(t, v, MAX_TEMP)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 5000, lines)
}

func TestWriteDeterministicPerSeed(t *testing.T) {
	write := func(seed int64) []byte {
		g, err := New(seed, DefaultStations)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, g.Write(&buf, 1000))
		return buf.Bytes()
	}

	assert.Equal(t, write(1), write(1))
	assert.NotEqual(t, write(1), write(2))
}

func TestNextSkewsTowardsFewStations(t *testing.T) {
	g, err := New(3, DefaultStations)
	require.NoError(t, err)

	counts := make(map[string]int)
	for i := 0; i < 20_000; i++ {
		name, _ := g.Next()
		counts[name]++
	}

	var top int
	for _, c := range counts {
		top = max(top, c)
	}
	// A uniform draw would give each station about 1/len of the samples.
	assert.Greater(t, top, 3*20_000/(2*len(DefaultStations)))
}

func TestNewWithoutStations(t *testing.T) {
	_, err := New(1, nil)
	assert.Error(t, err)
}
