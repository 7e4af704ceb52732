package tables

import "fmt"

// Problem describes a structural defect of a table. Pos is a table-relative
// cell offset, Row a row index, N the amount of overlap, overflow or missing
// slots depending on Kind.
type Problem struct {
	Kind     ProblemKind
	Pos      int
	Row      int
	N        int
	Colwidth []int
}

func (p Problem) String() string {
	switch p.Kind {
	case ProblemKindCollision:
		return fmt.Sprintf("%s at cell %d in row %d (%d slots)", p.Kind, p.Pos, p.Row, p.N)
	case ProblemKindMissing:
		return fmt.Sprintf("%s %d slots in row %d", p.Kind, p.N, p.Row)
	case ProblemKindOverlongRowspan:
		return fmt.Sprintf("%s at cell %d by %d rows", p.Kind, p.Pos, p.N)
	case ProblemKindColwidthMismatch:
		return fmt.Sprintf("%s at cell %d, expected %v", p.Kind, p.Pos, p.Colwidth)
	case ProblemKindZeroSized:
		return p.Kind.String()
	}
	return fmt.Sprintf("problem %d", p.Kind)
}
