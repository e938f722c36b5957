package brc

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"onebrc/chunk"
	"onebrc/report"
	"onebrc/stats"
)

// Runner summarizes one measurements file using a fixed pool of workers,
// one goroutine per planned chunk.
type Runner struct {
	path      string
	workers   int
	bufSize   int
	logger    *slog.Logger
	collector *report.Collector
}

func New(path string, options ...Option) *Runner {
	rn := &Runner{
		path:    path,
		workers: DefaultWorkers(),
		bufSize: DEFAULT_READ_BUFFER_SIZE,
		logger:  slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	for _, opt := range options {
		rn = opt(rn)
	}
	return rn
}

// Run plans the file, processes every chunk concurrently and merges the
// results. The first failing chunk aborts the run and no result is returned.
func (rn *Runner) Run(ctx context.Context) (stats.Map, error) {
	if rn.bufSize < 1 {
		return nil, fmt.Errorf("invalid read buffer size %d", rn.bufSize)
	}
	start := time.Now()

	file, err := os.Open(rn.path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input: %w", err)
	}
	defer file.Close()

	fStat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("unable to stat input: %w", err)
	}

	ranges, err := chunk.Plan(file, fStat.Size(), rn.workers)
	if err != nil {
		return nil, fmt.Errorf("unable to plan chunks: %w", err)
	}
	rn.logger.Debug("planned chunks",
		slog.String("path", rn.path),
		slog.Int64("size", fStat.Size()),
		slog.Int("workers", rn.workers),
		slog.Int("chunks", len(ranges)),
	)

	// Every goroutine writes only its own slot.
	results := make([]stats.Map, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	for i, rg := range ranges {
		i, rg := i, rg
		g.Go(func() error {
			m, err := rn.runChunk(gctx, i, rg)
			if err != nil {
				return fmt.Errorf("unable to process chunk %d %s: %w", i, rg, err)
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := stats.Merge(results...)
	rn.logger.Info("merged chunks",
		slog.Int("chunks", len(ranges)),
		slog.Int("keys", len(merged)),
		slog.Duration("took", time.Since(start)),
	)
	return merged, nil
}

func (rn *Runner) runChunk(ctx context.Context, idx int, rg chunk.Range) (stats.Map, error) {
	start := time.Now()

	// Each worker has its own handle, so no file position is shared.
	file, err := os.Open(rn.path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input: %w", err)
	}
	defer file.Close()

	m, lines, err := ProcessRange(ctx, io.NewSectionReader(file, rg.Start, rg.Len()), rn.bufSize)
	if err != nil {
		return nil, err
	}

	took := time.Since(start)
	rn.logger.Debug("processed chunk",
		slog.Int("chunk", idx),
		slog.String("range", rg.String()),
		slog.Int64("lines", lines),
		slog.Int("keys", len(m)),
		slog.Duration("took", took),
	)
	if rn.collector != nil {
		rn.collector.Observe(report.ChunkStat{
			Index:    idx,
			Range:    rg,
			Lines:    lines,
			Keys:     len(m),
			Duration: took,
		})
	}
	return m, nil
}
