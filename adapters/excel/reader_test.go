package excel

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/merwanroudane/plott/domain/table"
)

func TestReadCSV(t *testing.T) {
	csvData := "date,price,note\n2020-01-01,10.5,ok\n2020-01-02,11.25,fine\n"

	ds, err := NewReader("data.csv").Read(strings.NewReader(csvData))
	require.NoError(t, err)

	require.Len(t, ds.Columns, 3)
	assert.Equal(t, table.TypeText, ds.Columns[0].Type)
	assert.Equal(t, table.TypeNumeric, ds.Columns[1].Type)
	assert.Equal(t, table.TypeText, ds.Columns[2].Type)

	require.Equal(t, 2, ds.NumRows())
	assert.Equal(t, "2020-01-01", ds.Rows[0][0].Str)
	assert.Equal(t, 10.5, ds.Rows[0][1].Num)
}

func TestReadCSVBlankHeadersAndRaggedRows(t *testing.T) {
	csvData := "a,,c\n1,2,3\n4,5\n"

	ds, err := NewReader("data.csv").Read(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "Column_2", "c"}, ds.ColumnNames())
	// Short rows are padded; an empty cell in a numeric column is missing.
	assert.True(t, math.IsNaN(ds.Rows[1][2].Num))
}

func TestReadCSVNumericRequiresEveryValue(t *testing.T) {
	csvData := "mixed\n1\ntwo\n"

	ds, err := NewReader("data.csv").Read(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, table.TypeText, ds.Columns[0].Type)
}

func TestReadCSVRejectsHeaderOnly(t *testing.T) {
	_, err := NewReader("data.csv").Read(strings.NewReader("a,b\n"))
	assert.Error(t, err)
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"date", "price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2020-01-01", 10.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"2020-01-02", 11.0}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ds, err := NewReader("data.xlsx").Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Equal(t, 2, ds.NumRows())
	assert.Equal(t, table.TypeNumeric, ds.Columns[1].Type)
	assert.Equal(t, 10.5, ds.Rows[0][1].Num)
}

func TestWorkbookRoundTrip(t *testing.T) {
	src := table.Dataset{
		Columns: []table.Column{
			{Name: "label", Type: table.TypeText},
			{Name: "value", Type: table.TypeNumeric},
		},
		Rows: []table.Row{
			{table.Text("first"), table.Number(1.5)},
			{table.Text("second"), table.Number(2.5)},
		},
	}

	buf, err := WriteWorkbook(src)
	require.NoError(t, err)

	ds, err := NewReader("out.xlsx").Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []string{"label", "value"}, ds.ColumnNames())
	require.Equal(t, 2, ds.NumRows())
	assert.Equal(t, "first", ds.Rows[0][0].Str)
	assert.Equal(t, 2.5, ds.Rows[1][1].Num)
}
