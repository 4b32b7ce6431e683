package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textColumnDataset(name string, values []string) Dataset {
	ds := Dataset{Columns: []Column{{Name: name, Type: TypeText}}}
	for _, v := range values {
		ds.Rows = append(ds.Rows, Row{Text(v)})
	}
	return ds
}

func TestClassifyNumericSet(t *testing.T) {
	ds := Dataset{
		Columns: []Column{
			{Name: "price", Type: TypeNumeric},
			{Name: "volume", Type: TypeNumeric},
			{Name: "ticker", Type: TypeText},
		},
		Rows: []Row{
			{Number(10.5), Number(100), Text("AAA")},
			{Number(11.2), Number(250), Text("BBB")},
		},
	}

	_, cls := Classify(ds)

	assert.Equal(t, []string{"price", "volume"}, cls.Numeric)
	assert.Empty(t, cls.Datetime)
}

func TestClassifyCoercesFullyParseableTextColumn(t *testing.T) {
	ds := Dataset{
		Columns: []Column{
			{Name: "day", Type: TypeText},
			{Name: "value", Type: TypeNumeric},
		},
		Rows: []Row{
			{Text("2020-01-01"), Number(1)},
			{Text("2020-01-02"), Number(2)},
		},
	}

	out, cls := Classify(ds)

	require.Equal(t, []string{"day"}, cls.Datetime)
	idx := out.ColumnIndex("day")
	require.Equal(t, TypeTimestamp, out.Columns[idx].Type)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), out.Rows[0][idx].Time)

	// The input dataset is untouched; callers must use the returned copy.
	assert.Equal(t, TypeText, ds.Columns[0].Type)
	assert.Equal(t, "2020-01-01", ds.Rows[0][0].Str)
}

func TestClassifyExcludesPartiallyParseableColumn(t *testing.T) {
	ds := textColumnDataset("when", []string{"2020-01-01", "not-a-date"})

	out, cls := Classify(ds)

	assert.Empty(t, cls.Datetime)
	assert.Equal(t, TypeText, out.Columns[0].Type)
}

func TestClassifyEmptyCellFailsCoercion(t *testing.T) {
	ds := textColumnDataset("when", []string{"2020-01-01", ""})

	_, cls := Classify(ds)

	assert.Empty(t, cls.Datetime)
}

func TestClassifyIsIdempotent(t *testing.T) {
	ds := textColumnDataset("when", []string{"2020-01-01", "2020-01-02"})

	once, clsOnce := Classify(ds)
	twice, clsTwice := Classify(once)

	assert.Equal(t, clsOnce.Datetime, clsTwice.Datetime)
	assert.Equal(t, once, twice)
}

func TestClassifySkipsCoercionWhenTimestampExists(t *testing.T) {
	ds := Dataset{
		Columns: []Column{
			{Name: "native", Type: TypeTimestamp},
			{Name: "textual", Type: TypeText},
		},
		Rows: []Row{
			{Timestamp(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)), Text("2020-01-01")},
		},
	}

	out, cls := Classify(ds)

	// The textual column would parse, but coercion only runs when no
	// native timestamp column exists.
	assert.Equal(t, []string{"native"}, cls.Datetime)
	assert.Equal(t, TypeText, out.Columns[1].Type)
}

func TestParseTimestampFormats(t *testing.T) {
	cases := map[string]time.Time{
		"2020-01-02":          time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		"2020-01-02 15:04:05": time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC),
		"01/02/2020":          time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		"2020/01/02":          time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		"02-Jan-2020":         time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for input, want := range cases {
		got, ok := ParseTimestamp(input)
		require.True(t, ok, "expected %q to parse", input)
		assert.True(t, want.Equal(got), "parsed %q to %v, want %v", input, got, want)
	}

	for _, input := range []string{"", "not-a-date", "13/45/2020"} {
		_, ok := ParseTimestamp(input)
		assert.False(t, ok, "expected %q to fail", input)
	}
}
