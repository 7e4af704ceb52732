package tables

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func total(widths []float64) float64 {
	var s float64
	for _, w := range widths {
		s += w
	}
	return s
}

func TestWidthArithmetic(t *testing.T) {
	p := DefaultWidthPolicy
	tests := []struct {
		name string
		fn   func() ([]float64, error)
		want []float64
	}{
		{"even", func() ([]float64, error) { return EvenWidths(3, p), nil }, []float64{33.33, 33.33, 33.34}},
		{"insert average", func() ([]float64, error) { return InsertColumnWidth([]float64{50, 50}, 2, p) }, []float64{33.33, 33.33, 33.34}},
		{"insert first", func() ([]float64, error) { return InsertColumnWidth([]float64{60, 40}, 0, p) }, []float64{33.33, 40, 26.67}},
		{"insert into empty", func() ([]float64, error) { return InsertColumnWidth(nil, 0, p) }, []float64{100}},
		{"remove last", func() ([]float64, error) { return RemoveColumnWidths([]float64{25, 25, 50}, 2, 3, p) }, []float64{50, 50}},
		{"remove first", func() ([]float64, error) { return RemoveColumnWidths([]float64{20, 30, 50}, 0, 1, p) }, []float64{37.5, 62.5}},
		{"remove all", func() ([]float64, error) { return RemoveColumnWidths([]float64{50, 50}, 0, 2, p) }, nil},
		{"resize", func() ([]float64, error) { return ResizeColumnWidth([]float64{50, 50}, 0, 70, p) }, []float64{70, 30}},
		{"resize last", func() ([]float64, error) { return ResizeColumnWidth([]float64{50, 50}, 1, 70, p) }, []float64{30, 70}},
		{"resize clamped", func() ([]float64, error) { return ResizeColumnWidth([]float64{50, 50}, 0, 100, p) }, []float64{99, 1}},
		{"resize single", func() ([]float64, error) { return ResizeColumnWidth([]float64{100}, 0, 30, p) }, []float64{100}},
		{"normalize rounding", func() ([]float64, error) { return NormalizeWidths([]float64{33.333, 33.333, 33.333}, p), nil }, []float64{33.33, 33.33, 33.34}},
		{"normalize drift", func() ([]float64, error) { return NormalizeWidths([]float64{10, 10, 10}, p), nil }, []float64{33.33, 33.33, 33.34}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWidthIndexErrors(t *testing.T) {
	p := DefaultWidthPolicy
	if _, err := InsertColumnWidth([]float64{100}, 2, p); !errors.Is(err, ErrWidthIndex) {
		t.Errorf("InsertColumnWidth() error = %v", err)
	}
	if _, err := RemoveColumnWidths([]float64{100}, 1, 1, p); !errors.Is(err, ErrWidthIndex) {
		t.Errorf("RemoveColumnWidths() error = %v", err)
	}
	if _, err := ResizeColumnWidth([]float64{100}, -1, 10, p); !errors.Is(err, ErrWidthIndex) {
		t.Errorf("ResizeColumnWidth() error = %v", err)
	}
}

func TestWidthsAddUp(t *testing.T) {
	p := DefaultWidthPolicy
	widths := EvenWidths(7, p)
	for i := range 5 {
		var err error
		if widths, err = InsertColumnWidth(widths, i, p); err != nil {
			t.Fatalf("InsertColumnWidth() error = %v", err)
		}
		if math.Abs(total(widths)-100) > 0.001 {
			t.Fatalf("after insert %d widths %v add up to %v", i, widths, total(widths))
		}
		if widths, err = ResizeColumnWidth(widths, i, 17.5, p); err != nil {
			t.Fatalf("ResizeColumnWidth() error = %v", err)
		}
		if math.Abs(total(widths)-100) > 0.001 {
			t.Fatalf("after resize %d widths %v add up to %v", i, widths, total(widths))
		}
	}
	for len(widths) > 1 {
		var err error
		if widths, err = RemoveColumnWidths(widths, 0, 1, p); err != nil {
			t.Fatalf("RemoveColumnWidths() error = %v", err)
		}
		if math.Abs(total(widths)-100) > 0.001 {
			t.Fatalf("after remove widths %v add up to %v", widths, total(widths))
		}
	}
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		Configure(Options{MapCacheSize: DefaultMapCacheSize, Widths: DefaultWidthPolicy})
	})
	Configure(Options{MapCacheSize: 1, Widths: WidthPolicy{Precision: 0, Tolerance: 1, MinWidth: 5}})
	if got := currentWidthPolicy(); got.Precision != 0 || got.MinWidth != 5 {
		t.Errorf("policy = %+v", got)
	}
	if got := EvenWidths(3, currentWidthPolicy()); !cmp.Equal(got, []float64{33, 33, 34}) {
		t.Errorf("EvenWidths() = %v", got)
	}
}
