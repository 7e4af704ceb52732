package tables

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

var ErrWidthIndex = errors.New("column width index out of range")

// WidthPolicy controls percentage width arithmetic kept in table colwidths.
type WidthPolicy struct {
	// Precision is number of decimal places widths are rounded to.
	Precision int32
	// Tolerance is the largest drift from 100 absorbed by the last column
	// alone, larger drift is spread evenly first.
	Tolerance float64
	// MinWidth is the smallest width a resized column can get.
	MinWidth float64
}

var DefaultWidthPolicy = WidthPolicy{Precision: 2, Tolerance: 1, MinWidth: 1}

// Options configure package level behavior.
type Options struct {
	MapCacheSize int
	Widths       WidthPolicy
}

var widthPolicy atomic.Pointer[WidthPolicy]

// Configure sets map cache size and width policy used by commands.
func Configure(opts Options) {
	defaultCache.SetLimit(opts.MapCacheSize)
	p := opts.Widths
	widthPolicy.Store(&p)
}

// ActiveWidthPolicy returns policy set by the last Configure call.
func ActiveWidthPolicy() WidthPolicy {
	return currentWidthPolicy()
}

func currentWidthPolicy() WidthPolicy {
	if p := widthPolicy.Load(); p != nil {
		return *p
	}
	return DefaultWidthPolicy
}

var hundred = decimal.NewFromInt(100)

func toDecimals(widths []float64) []decimal.Decimal {
	res := make([]decimal.Decimal, len(widths))
	for i, w := range widths {
		res[i] = decimal.NewFromFloat(w)
	}
	return res
}

func sum(ds []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

// EvenWidths splits 100 between n columns.
func EvenWidths(n int, p WidthPolicy) []float64 {
	if n <= 0 {
		return nil
	}
	ds := make([]decimal.Decimal, n)
	share := hundred.Div(decimal.NewFromInt(int64(n)))
	for i := range ds {
		ds[i] = share
	}
	return normalize(ds, p)
}

// InsertColumnWidth adds a column at index with the current average width
// and scales all widths back to 100.
func InsertColumnWidth(widths []float64, index int, p WidthPolicy) ([]float64, error) {
	if index < 0 || index > len(widths) {
		return nil, fmt.Errorf("%w: %d of %d", ErrWidthIndex, index, len(widths))
	}
	if len(widths) == 0 {
		return EvenWidths(1, p), nil
	}
	ds := toDecimals(widths)
	total := sum(ds)
	avg := total.Div(decimal.NewFromInt(int64(len(ds))))
	ds = slices.Insert(ds, index, avg)
	return scale(ds, total.Add(avg), p), nil
}

// RemoveColumnWidths drops columns from-to and hands their share to the
// remaining columns proportionally.
func RemoveColumnWidths(widths []float64, from, to int, p WidthPolicy) ([]float64, error) {
	if from < 0 || to > len(widths) || from >= to {
		return nil, fmt.Errorf("%w: %d-%d of %d", ErrWidthIndex, from, to, len(widths))
	}
	rest := append(toDecimals(widths[:from]), toDecimals(widths[to:])...)
	if len(rest) == 0 {
		return nil, nil
	}
	total := sum(rest)
	if !total.IsPositive() {
		return EvenWidths(len(rest), p), nil
	}
	return scale(rest, total, p), nil
}

// ResizeColumnWidth sets column width to percent taking the difference from
// the right neighbour, or the left one for the last column.
func ResizeColumnWidth(widths []float64, index int, percent float64, p WidthPolicy) ([]float64, error) {
	if index < 0 || index >= len(widths) {
		return nil, fmt.Errorf("%w: %d of %d", ErrWidthIndex, index, len(widths))
	}
	ds := toDecimals(widths)
	if len(ds) == 1 {
		return normalize(ds, p), nil
	}
	nb := index + 1
	if nb == len(ds) {
		nb = index - 1
	}
	minW := decimal.NewFromFloat(p.MinWidth)
	pair := ds[index].Add(ds[nb])
	want := decimal.NewFromFloat(percent)
	want = decimal.Max(minW, decimal.Min(want, pair.Sub(minW)))
	if pair.LessThan(minW.Add(minW)) {
		want = pair.Div(decimal.NewFromInt(2))
	}
	ds[index], ds[nb] = want, pair.Sub(want)
	return normalize(ds, p), nil
}

// NormalizeWidths rounds widths and makes them add up to exactly 100.
func NormalizeWidths(widths []float64, p WidthPolicy) []float64 {
	if len(widths) == 0 {
		return nil
	}
	return normalize(toDecimals(widths), p)
}

func scale(ds []decimal.Decimal, total decimal.Decimal, p WidthPolicy) []float64 {
	for i, d := range ds {
		ds[i] = d.Mul(hundred).Div(total)
	}
	return normalize(ds, p)
}

func normalize(ds []decimal.Decimal, p WidthPolicy) []float64 {
	n := decimal.NewFromInt(int64(len(ds)))
	for i, d := range ds {
		ds[i] = d.Round(p.Precision)
	}
	diff := hundred.Sub(sum(ds))
	if diff.Abs().GreaterThan(decimal.NewFromFloat(p.Tolerance)) {
		share := diff.Div(n).Round(p.Precision)
		for i := range ds {
			ds[i] = ds[i].Add(share)
		}
		diff = hundred.Sub(sum(ds))
	}
	last := len(ds) - 1
	ds[last] = ds[last].Add(diff)

	res := make([]float64, len(ds))
	for i, d := range ds {
		res[i] = d.InexactFloat64()
	}
	return res
}
