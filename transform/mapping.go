// Package transform records document changes as steps with position maps.
package transform

// MapResult is a mapped position. Deleted is set when content around the
// position was removed.
type MapResult struct {
	Pos     int
	Deleted bool
}

// Mappable maps positions through document changes. Positive assoc keeps the
// position after content inserted at it, negative keeps it before.
type Mappable interface {
	Map(pos int) int
	MapResult(pos, assoc int) MapResult
}

// StepMap describes a single change as triples of start, old size, new size.
type StepMap struct {
	ranges []int
}

var EmptyStepMap = StepMap{}

func NewStepMap(ranges ...int) StepMap {
	if len(ranges) == 3 && ranges[1] == 0 && ranges[2] == 0 {
		return EmptyStepMap
	}
	return StepMap{ranges: ranges}
}

func (m StepMap) Map(pos int) int {
	return m.MapResult(pos, 1).Pos
}

func (m StepMap) MapResult(pos, assoc int) MapResult {
	diff := 0
	for i := 0; i+2 < len(m.ranges); i += 3 {
		start := m.ranges[i]
		if start > pos {
			break
		}
		oldSize, newSize := m.ranges[i+1], m.ranges[i+2]
		end := start + oldSize
		if pos <= end {
			side := assoc
			switch {
			case oldSize == 0:
			case pos == start:
				side = -1
			case pos == end:
				side = 1
			}
			res := start + diff
			if side >= 0 {
				res += newSize
			}
			deleted := oldSize > 0 && !(assoc < 0 && pos == start) && !(assoc >= 0 && pos == end)
			return MapResult{Pos: res, Deleted: deleted}
		}
		diff += newSize - oldSize
	}
	return MapResult{Pos: pos + diff}
}

// Mapping is a sequence of step maps applied in order.
type Mapping struct {
	maps []StepMap
}

func (m *Mapping) AppendMap(sm StepMap) {
	m.maps = append(m.maps, sm)
}

func (m *Mapping) Maps() []StepMap {
	return append([]StepMap(nil), m.maps...)
}

// Slice returns mapping made of maps starting at index from.
func (m *Mapping) Slice(from int) *Mapping {
	if from >= len(m.maps) {
		return &Mapping{}
	}
	return &Mapping{maps: append([]StepMap(nil), m.maps[from:]...)}
}

func (m *Mapping) Map(pos int) int {
	return m.MapResult(pos, 1).Pos
}

func (m *Mapping) MapResult(pos, assoc int) MapResult {
	deleted := false
	for _, sm := range m.maps {
		r := sm.MapResult(pos, assoc)
		pos = r.Pos
		deleted = deleted || r.Deleted
	}
	return MapResult{Pos: pos, Deleted: deleted}
}
