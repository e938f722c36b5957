package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/slog"

	"onebrc/brc"
	"onebrc/report"
	"onebrc/stats"
)

var (
	numWorkers int
	cpuProfile string
	verbose    bool
	showStats  bool
	format     string
)

func init() {
	flag.IntVar(&numWorkers, "workers", brc.DefaultWorkers(), "number of workers")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write a cpu profile to this file")
	flag.BoolVar(&verbose, "v", false, "debug logging on stderr")
	flag.BoolVar(&showStats, "stats", false, "print per-chunk stats on stderr")
	flag.StringVar(&format, "format", "line", "output format: line or table")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <measurements file>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Fatal(err)
	}
}

func run(path string) error {
	if format != "line" && format != "table" {
		return fmt.Errorf("unknown format %q", format)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("unable to create CPU profile: %w", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("unable to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []brc.Option{brc.WithWorkers(numWorkers), brc.WithLogger(logger)}
	var collector *report.Collector
	if showStats {
		collector = report.NewCollector(2 * numWorkers)
		opts = append(opts, brc.WithCollector(collector))
	}

	start := time.Now()
	m, err := brc.New(path, opts...).Run(context.Background())
	if err != nil {
		return err
	}
	wall := time.Since(start)

	summary := stats.Format(m)
	logger.Info("summary",
		slog.Int("keys", len(m)),
		slog.String("digest", fmt.Sprintf("%016x", stats.Digest(summary))),
	)

	switch format {
	case "table":
		stats.FormatTable(os.Stdout, m)
	default:
		fmt.Println(summary)
	}

	if collector != nil {
		collector.Print(os.Stderr, wall)
	}
	return nil
}
