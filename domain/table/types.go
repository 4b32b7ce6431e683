package table

import (
	"math"
	"sort"
	"strconv"
	"time"
)

// ColumnType tags a column with its inferred value type.
type ColumnType string

const (
	TypeNumeric   ColumnType = "numeric"
	TypeTimestamp ColumnType = "timestamp"
	TypeText      ColumnType = "text"
)

// Value is a single typed cell. Kind selects which payload field is
// meaningful; the others are zero.
type Value struct {
	Kind ColumnType
	Num  float64
	Time time.Time
	Str  string
}

// Number builds a numeric cell.
func Number(f float64) Value { return Value{Kind: TypeNumeric, Num: f} }

// Timestamp builds a timestamp cell.
func Timestamp(t time.Time) Value { return Value{Kind: TypeTimestamp, Time: t} }

// Text builds a text cell.
func Text(s string) Value { return Value{Kind: TypeText, Str: s} }

// IsMissing reports whether the cell carries no usable value.
func (v Value) IsMissing() bool {
	switch v.Kind {
	case TypeNumeric:
		return math.IsNaN(v.Num)
	case TypeTimestamp:
		return v.Time.IsZero()
	default:
		return v.Str == ""
	}
}

// Display renders the cell for previews and frame labels.
func (v Value) Display() string {
	switch v.Kind {
	case TypeNumeric:
		if math.IsNaN(v.Num) {
			return ""
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case TypeTimestamp:
		if v.Time.IsZero() {
			return ""
		}
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return v.Str
	}
}

// Column describes one column of a Dataset.
type Column struct {
	Name string
	Type ColumnType
}

// Row is one record, indexed parallel to Dataset.Columns.
type Row []Value

// Dataset is an ordered tabular collection. Column order and row order are
// preserved unless explicitly sorted.
type Dataset struct {
	Columns []Column
	Rows    []Row
}

// NumRows returns the number of data rows.
func (d Dataset) NumRows() int { return len(d.Rows) }

// ColumnIndex returns the position of the named column, or -1.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (d Dataset) HasColumn(name string) bool { return d.ColumnIndex(name) >= 0 }

// ColumnNames returns the column names in declaration order.
func (d Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Clone deep-copies the dataset so callers can retype or sort without
// touching the original.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Columns: make([]Column, len(d.Columns)),
		Rows:    make([]Row, len(d.Rows)),
	}
	copy(out.Columns, d.Columns)
	for i, row := range d.Rows {
		out.Rows[i] = make(Row, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// sortedByTimestamp returns a copy sorted ascending by the timestamp column
// at index col. The sort is stable; ties keep their original order.
func (d Dataset) sortedByTimestamp(col int) Dataset {
	out := Dataset{Columns: make([]Column, len(d.Columns)), Rows: make([]Row, len(d.Rows))}
	copy(out.Columns, d.Columns)
	copy(out.Rows, d.Rows)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i][col].Time.Before(out.Rows[j][col].Time)
	})
	return out
}
