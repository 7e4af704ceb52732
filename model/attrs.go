package model

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// Attrs holds node attributes. Values are string, int, []int, []float64 or
// bool. Attrs attached to a node must not be modified, use With.
type Attrs map[string]any

func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	res := make(Attrs, len(a))
	for k, v := range a {
		switch tv := v.(type) {
		case []int:
			res[k] = slices.Clone(tv)
		case []float64:
			res[k] = slices.Clone(tv)
		default:
			res[k] = v
		}
	}
	return res
}

// With returns a copy with name set to value.
func (a Attrs) With(name string, value any) Attrs {
	res := a.Clone()
	if res == nil {
		res = make(Attrs, 1)
	}
	res[name] = value
	return res
}

func (a Attrs) Int(name string) int {
	switch v := a[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Ints returns a copy of integer list attribute, nil when absent.
func (a Attrs) Ints(name string) []int {
	if v, ok := a[name].([]int); ok {
		return slices.Clone(v)
	}
	return nil
}

// Floats returns a copy of float list attribute, nil when absent.
func (a Attrs) Floats(name string) []float64 {
	if v, ok := a[name].([]float64); ok {
		return slices.Clone(v)
	}
	return nil
}

func (a Attrs) String(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a Attrs) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

func (a Attrs) Equal(b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !AttrEqual(v, w) {
			return false
		}
	}
	return true
}

// AttrEqual compares two attribute values. Empty lists equal nil.
func AttrEqual(a, b any) bool {
	switch av := a.(type) {
	case []int:
		bv, ok := b.([]int)
		if !ok {
			return len(av) == 0 && b == nil
		}
		return slices.Equal(av, bv)
	case []float64:
		bv, ok := b.([]float64)
		if !ok {
			return len(av) == 0 && b == nil
		}
		return slices.Equal(av, bv)
	case nil:
		switch bv := b.(type) {
		case []int:
			return len(bv) == 0
		case []float64:
			return len(bv) == 0
		}
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

func coerce(kind AttrKind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case AttrString:
		switch tv := v.(type) {
		case string:
			return tv, nil
		case fmt.Stringer:
			return tv.String(), nil
		}
	case AttrInt:
		switch tv := v.(type) {
		case int:
			return tv, nil
		case int64:
			return int(tv), nil
		case float64:
			return int(tv), nil
		case string:
			n, err := strconv.Atoi(tv)
			if err != nil {
				return nil, err
			}
			return n, nil
		}
	case AttrInts:
		if tv, ok := v.([]int); ok {
			if len(tv) == 0 {
				return nil, nil
			}
			return slices.Clone(tv), nil
		}
	case AttrFloats:
		if tv, ok := v.([]float64); ok {
			if len(tv) == 0 {
				return nil, nil
			}
			return slices.Clone(tv), nil
		}
	case AttrBool:
		if tv, ok := v.(bool); ok {
			return tv, nil
		}
	}
	return nil, fmt.Errorf("unexpected value %v of type %T", v, v)
}
