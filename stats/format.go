package stats

import (
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SortedKeys returns the keys of m in ascending byte order.
func SortedKeys(m Map) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Format renders m as {k1=min/avg/max, k2=...} with keys sorted.
func Format(m Map) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range SortedKeys(m) {
		if i > 0 {
			sb.WriteString(", ")
		}
		a := m[key]
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(Fixed1(a.Min))
		sb.WriteByte('/')
		sb.WriteString(Fixed1(a.Avg))
		sb.WriteByte('/')
		sb.WriteString(Fixed1(a.Max))
	}
	sb.WriteByte('}')
	return sb.String()
}

// FormatTable writes m as a table with one row per key.
func FormatTable(w io.Writer, m Map) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Min", "Avg", "Max", "Count"})
	table.SetAutoFormatHeaders(false)

	keys := SortedKeys(m)
	data := make([][]string, len(keys))
	for i, key := range keys {
		a := m[key]
		data[i] = []string{
			key,
			Fixed1(a.Min),
			Fixed1(a.Avg),
			Fixed1(a.Max),
			strconv.FormatInt(a.Count, 10),
		}
	}
	table.AppendBulk(data)
	table.Render()
}

// Fixed1 formats v with exactly one fractional digit. Ties are rounded
// away from zero on the exact binary value of v, and a negative v keeps
// its sign even when it rounds to zero.
func Fixed1(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + exactDecimal(v).StringFixed(1)
}

// exactDecimal converts a finite, non-negative float64 to a decimal
// without any rounding: mant*2^-k == mant*5^k*10^-k.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53

	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	k := int64(-exp)
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(pow.Mul(pow, mant), int32(-k))
}
