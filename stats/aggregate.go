package stats

import "math"

// countLimit is the count past which the running average stops moving,
// keeping avg*count well inside float64 range.
const countLimit = math.MaxFloat64 / 100

// Aggregate holds the running statistics of one key.
type Aggregate struct {
	Min   float64
	Max   float64
	Avg   float64
	Count int64
}

// Map holds one Aggregate per key. A Map is owned by a single goroutine
// at a time.
type Map map[string]*Aggregate

func newAggregate(v float64) *Aggregate {
	return &Aggregate{Min: v, Max: v, Avg: v, Count: 1}
}

// Add folds a single observation into a.
func (a *Aggregate) Add(v float64) {
	a.add(v, countLimit)
}

func (a *Aggregate) add(v float64, limit float64) {
	if a.Min > v {
		a.Min = v
	}
	if a.Max < v {
		a.Max = v
	}
	n := float64(a.Count)
	if n < limit {
		a.Avg = (a.Avg*n + v) / (n + 1)
	}
	a.Count++
}

// Merge folds o into a. Once the combined count would reach the overflow
// guard neither Avg nor Count move.
func (a *Aggregate) Merge(o *Aggregate) {
	a.merge(o, countLimit)
}

func (a *Aggregate) merge(o *Aggregate, limit float64) {
	if a.Min > o.Min {
		a.Min = o.Min
	}
	if a.Max < o.Max {
		a.Max = o.Max
	}
	n := a.Count + o.Count
	if float64(n) < limit {
		a.Avg = (a.Avg*float64(a.Count) + o.Avg*float64(o.Count)) / float64(n)
		a.Count = n
	}
}
