package brc

import (
	"runtime"

	"golang.org/x/exp/slog"

	"onebrc/report"
)

const DEFAULT_READ_BUFFER_SIZE = 1024 * 1024 // 1 MB

type Option func(*Runner) *Runner

// DefaultWorkers leaves one CPU for the coordinator.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()-1)
}

func WithWorkers(n int) Option {
	return func(rn *Runner) *Runner {
		rn.workers = n
		return rn
	}
}

func WithReadBufferSize(n int) Option {
	return func(rn *Runner) *Runner {
		rn.bufSize = n
		return rn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) *Runner {
		rn.logger = logger
		return rn
	}
}

// WithCollector reports every finished chunk to c.
func WithCollector(c *report.Collector) Option {
	return func(rn *Runner) *Runner {
		rn.collector = c
		return rn
	}
}
