package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequenceDataset(n int) Dataset {
	ds := Dataset{Columns: []Column{{Name: "value", Type: TypeNumeric}}}
	for i := 1; i <= n; i++ {
		ds.Rows = append(ds.Rows, Row{Number(float64(i))})
	}
	return ds
}

// frameRows collects the rows carrying the given frame id.
func frameRows(t *testing.T, expanded Dataset, frameID float64) []Row {
	t.Helper()
	idx := expanded.ColumnIndex(FrameColumn)
	require.GreaterOrEqual(t, idx, 0)
	var rows []Row
	for _, row := range expanded.Rows {
		if row[idx].Num == frameID {
			rows = append(rows, row)
		}
	}
	return rows
}

func TestExpandCumulativePrefixLaw(t *testing.T) {
	ds := sequenceDataset(7)

	out := Expand(ds, FrameSpec{StartRow: 5})

	// Frames of sizes 5, 6, 7.
	assert.Len(t, out.Rows, 18)
	for k := 5; k <= 7; k++ {
		rows := frameRows(t, out, float64(k))
		require.Len(t, rows, k, "frame %d", k)
		for i, row := range rows {
			assert.Equal(t, ds.Rows[i][0], row[0], "frame %d row %d", k, i)
		}
	}
}

func TestExpandAppendsFrameColumn(t *testing.T) {
	ds := sequenceDataset(3)

	out := Expand(ds, FrameSpec{StartRow: 1})

	require.Len(t, out.Columns, 2)
	assert.Equal(t, Column{Name: FrameColumn, Type: TypeNumeric}, out.Columns[1])
	// 1 + 2 + 3 rows.
	assert.Len(t, out.Rows, 6)
}

func TestExpandClampsStartRowAboveRowCount(t *testing.T) {
	ds := sequenceDataset(10)

	out := Expand(ds, FrameSpec{StartRow: 20})

	// A single frame containing all rows.
	assert.Len(t, out.Rows, 10)
	rows := frameRows(t, out, 10)
	assert.Len(t, rows, 10)
}

func TestExpandClampsStartRowBelowOne(t *testing.T) {
	ds := sequenceDataset(3)

	out := Expand(ds, FrameSpec{StartRow: 0})

	assert.Len(t, out.Rows, 6)
	assert.Len(t, frameRows(t, out, 1), 1)
}

func TestExpandSortsByTimestampOrderingColumn(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC) }
	ds := Dataset{
		Columns: []Column{
			{Name: "date", Type: TypeTimestamp},
			{Name: "value", Type: TypeNumeric},
		},
		Rows: []Row{
			{Timestamp(day(3)), Number(30)},
			{Timestamp(day(1)), Number(10)},
			{Timestamp(day(2)), Number(20)},
		},
	}

	out := Expand(ds, FrameSpec{OrderBy: "date", StartRow: 1})

	first := frameRows(t, out, 1)
	require.Len(t, first, 1)
	assert.Equal(t, day(1), first[0][0].Time)

	// Input dataset keeps its original order.
	assert.Equal(t, day(3), ds.Rows[0][0].Time)
}

func TestExpandIgnoresNonTimestampOrderingColumn(t *testing.T) {
	ds := Dataset{
		Columns: []Column{{Name: "value", Type: TypeNumeric}},
		Rows:    []Row{{Number(3)}, {Number(1)}, {Number(2)}},
	}

	out := Expand(ds, FrameSpec{OrderBy: "value", StartRow: 1})

	first := frameRows(t, out, 1)
	require.Len(t, first, 1)
	assert.Equal(t, 3.0, first[0][0].Num)
}

func TestExpandEmptyDataset(t *testing.T) {
	ds := Dataset{Columns: []Column{{Name: "value", Type: TypeNumeric}}}

	out := Expand(ds, FrameSpec{StartRow: 5})

	assert.Empty(t, out.Rows)
	assert.Len(t, out.Columns, 2)
}

func TestExpandMaxFramesRaisesStartRow(t *testing.T) {
	ds := sequenceDataset(10)

	out := Expand(ds, FrameSpec{StartRow: 1, MaxFrames: 3})

	// Frames 8, 9, 10 only.
	assert.Empty(t, frameRows(t, out, 7))
	assert.Len(t, frameRows(t, out, 8), 8)
	assert.Len(t, out.Rows, 8+9+10)
}

func TestExpandEndToEnd(t *testing.T) {
	ds := Dataset{
		Columns: []Column{
			{Name: "label", Type: TypeText},
			{Name: "value", Type: TypeNumeric},
		},
	}
	for i := 1; i <= 10; i++ {
		ds.Rows = append(ds.Rows, Row{Text("row"), Number(float64(i))})
	}

	out := Expand(ds, FrameSpec{StartRow: 5})

	idx := out.ColumnIndex(FrameColumn)
	frames := map[float64]bool{}
	for _, row := range out.Rows {
		frames[row[idx].Num] = true
	}
	assert.Len(t, frames, 6) // frame ids 5..10

	assert.Len(t, frameRows(t, out, 5), 5)
	last := frameRows(t, out, 10)
	require.Len(t, last, 10)
	for i, row := range last {
		assert.Equal(t, "row", row[0].Str)
		assert.Equal(t, float64(i+1), row[1].Num)
	}
}
