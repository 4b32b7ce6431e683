package table

// FrameColumn is the synthetic animation column appended by Expand.
const FrameColumn = "frame_id"

// FrameSpec configures a progressive-frame expansion.
type FrameSpec struct {
	// OrderBy names an optional ordering column. The dataset is sorted
	// ascending by it before expansion, but only when the column is typed
	// timestamp; any other type leaves row order untouched.
	OrderBy string

	// StartRow is the size of the first frame's prefix. Values outside
	// [1, NumRows] are clamped, never rejected.
	StartRow int

	// MaxFrames caps NumRows-StartRow+1 by raising StartRow. Expansion
	// materializes O(n^2) rows, so interactive callers must keep this
	// bounded. Zero means no cap.
	MaxFrames int
}

// Expand builds the animation dataset for a renderer that steps through the
// FrameColumn: for each k from the clamped start row through NumRows, the
// first k rows of the (possibly sorted) dataset are copied and tagged with
// frame_id = k, concatenated in increasing k. Within a frame, rows keep the
// dataset's order. An empty dataset expands to an empty dataset with zero
// frames.
func Expand(ds Dataset, spec FrameSpec) Dataset {
	cols := make([]Column, len(ds.Columns)+1)
	copy(cols, ds.Columns)
	cols[len(ds.Columns)] = Column{Name: FrameColumn, Type: TypeNumeric}

	total := ds.NumRows()
	if total == 0 {
		return Dataset{Columns: cols}
	}

	if idx := ds.ColumnIndex(spec.OrderBy); idx >= 0 && ds.Columns[idx].Type == TypeTimestamp {
		ds = ds.sortedByTimestamp(idx)
	}

	start := spec.StartRow
	if start < 1 {
		start = 1
	}
	if start > total {
		start = total
	}
	if spec.MaxFrames > 0 && total-start+1 > spec.MaxFrames {
		start = total - spec.MaxFrames + 1
	}

	// Arithmetic series: sum of prefix sizes start..total.
	out := make([]Row, 0, (start+total)*(total-start+1)/2)
	for k := start; k <= total; k++ {
		for r := 0; r < k; r++ {
			src := ds.Rows[r]
			row := make(Row, len(src)+1)
			copy(row, src)
			row[len(src)] = Number(float64(k))
			out = append(out, row)
		}
	}
	return Dataset{Columns: cols, Rows: out}
}
