package report

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/rodaine/table"

	"onebrc/chunk"
)

// ChunkStat describes one finished chunk.
type ChunkStat struct {
	Index    int
	Range    chunk.Range
	Lines    int64
	Keys     int
	Duration time.Duration
}

// Collector gathers chunk stats from concurrently running workers.
type Collector struct {
	mu     sync.Mutex
	chunks []ChunkStat
	tach   *tachymeter.Tachymeter
}

func NewCollector(expected int) *Collector {
	return &Collector{
		tach: tachymeter.New(&tachymeter.Config{Size: max(expected, 1)}),
	}
}

func (c *Collector) Observe(s ChunkStat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.chunks = append(c.chunks, s)
	c.tach.AddTime(s.Duration)
}

// Chunks returns the observed stats ordered by chunk index.
func (c *Collector) Chunks() []ChunkStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	ret := make([]ChunkStat, len(c.chunks))
	copy(ret, c.chunks)
	sort.Slice(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret
}

// Print writes a per-chunk table followed by duration percentiles. wall is
// the elapsed time of the whole run.
func (c *Collector) Print(w io.Writer, wall time.Duration) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.
		New("Chunk", "Range", "Bytes", "Lines", "Keys", "Duration").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt).
		WithWriter(w)
	chunks := c.Chunks()
	var totalLines int64
	for _, s := range chunks {
		tbl.AddRow(s.Index, s.Range.String(), s.Range.Len(), s.Lines, s.Keys, s.Duration)
		totalLines += s.Lines
	}
	tbl.Print()
	if len(chunks) == 0 {
		return
	}

	c.mu.Lock()
	c.tach.SetWallTime(wall)
	m := c.tach.Calc()
	c.mu.Unlock()

	summary := table.
		New("Chunks", "Lines", "P50", "P99", "Max", "Wall").
		WithHeaderFormatter(headerFmt).
		WithWriter(w)
	summary.AddRow(m.Count, totalLines, m.Time.P50, m.Time.P99, m.Time.Max, wall)
	summary.Print()
}
