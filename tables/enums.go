package tables

// Kind of structural defect found while computing a table map.
// ENUM(collision, missing, overlong_rowspan, colwidth_mismatch, zero_sized)
type ProblemKind int

// Direction of cell navigation.
// ENUM(horiz, vert)
type Axis int

// What part of the table header toggling applies to.
// ENUM(row, column, cell)
type HeaderKind int
