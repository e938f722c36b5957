package main

import (
	"flag"
	"log"
	"os"
	"time"

	"onebrc/gen"
)

var (
	numLines    int
	outPath     string
	seed        int64
	numStations int
)

func init() {
	flag.IntVar(&numLines, "n", 1_000_000, "number of measurements")
	flag.StringVar(&outPath, "out", "measurements.txt", "output file")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.IntVar(&numStations, "stations", len(gen.DefaultStations), "number of stations to draw from")
}

func main() {
	flag.Parse()

	stations := gen.DefaultStations[:max(1, min(numStations, len(gen.DefaultStations)))]
	g, err := gen.New(seed, stations)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("unable to create output: %v", err)
	}

	t := time.Now()
	if err := g.Write(f, numLines); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("unable to close output: %v", err)
	}
	log.Printf("wrote %d measurements to %s in %s", numLines, outPath, time.Since(t))
}
