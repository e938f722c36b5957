package gen

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"github.com/pingcap/go-ycsb/pkg/generator"
)

const (
	MAX_TEMP = 99.9
	MIN_TEMP = -99.9
	STDDEV   = 10.0
)

// Station is a key of the generated file and the mean its values are
// drawn around.
type Station struct {
	Name string
	Mean float64
}

var DefaultStations = []Station{
	{"Abha", 18.0},
	{"Accra", 26.4},
	{"Addis Ababa", 16.0},
	{"Alexandria", 20.0},
	{"Anchorage", 2.8},
	{"Athens", 19.2},
	{"Bangkok", 28.6},
	{"Bergen", 7.7},
	{"Bogotá", 13.0},
	{"Cairo", 21.4},
	{"Cape Town", 16.2},
	{"Dakar", 24.0},
	{"Dhaka", 25.9},
	{"Dublin", 9.8},
	{"Hamburg", 9.7},
	{"Honiara", 26.5},
	{"İzmir", 17.9},
	{"Jakarta", 26.7},
	{"Kathmandu", 18.3},
	{"Kyiv", 8.4},
	{"Lhasa", 7.6},
	{"Lima", 19.2},
	{"Lyon", 12.5},
	{"Montréal", 6.8},
	{"Nuuk", -1.4},
	{"Oslo", 5.7},
	{"Ouarzazate", 19.1},
	{"Petropavlovsk-Kamchatsky", 1.9},
	{"Reykjavík", 4.3},
	{"Rome", 15.2},
	{"San José", 22.6},
	{"São Paulo", 19.7},
	{"Tamale", 27.9},
	{"Ürümqi", 7.4},
	{"Vladivostok", 4.9},
	{"Whitehorse", -0.1},
	{"Yakutsk", -8.8},
	{"Zürich", 9.3},
}

// Generator produces measurement lines. Station popularity follows a
// scrambled Zipfian distribution, so a few stations dominate the file.
type Generator struct {
	stations []Station
	rng      *rand.Rand
	keys     *generator.ScrambledZipfian
}

func New(seed int64, stations []Station) (*Generator, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("no stations to generate from")
	}
	return &Generator{
		stations: stations,
		rng:      rand.New(rand.NewSource(seed)),
		keys:     generator.NewScrambledZipfian(0, int64(len(stations)-1), generator.ZipfianConstant),
	}, nil
}

// Next returns a station name and a temperature with one fractional digit.
func (g *Generator) Next() (string, float64) {
	n := int64(len(g.stations))
	idx := g.keys.Next(g.rng) % n
	if idx < 0 {
		idx += n
	}
	s := g.stations[idx]
	temp := s.Mean + g.rng.NormFloat64()*STDDEV
	temp = math.Round(temp*10) / 10
	return s.Name, max(MIN_TEMP, min(MAX_TEMP, temp))
}

// Write writes n lines of the form "station;temp\n" to w.
func (g *Generator) Write(w io.Writer, n int) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 128)
	for i := 0; i < n; i++ {
		name, temp := g.Next()
		line = append(line[:0], name...)
		line = append(line, ';')
		line = strconv.AppendFloat(line, temp, 'f', 1, 64)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("unable to write measurement: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to flush measurements: %w", err)
	}
	return nil
}
