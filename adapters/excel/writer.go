package excel

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/merwanroudane/plott/domain/table"
)

// WriteWorkbook renders a dataset to an in-memory xlsx workbook. Used for
// the example-data download link.
func WriteWorkbook(ds table.Dataset) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range ds.Rows {
		out := make([]interface{}, len(row))
		for j, v := range row {
			out[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &out); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

func cellValue(v table.Value) interface{} {
	switch v.Kind {
	case table.TypeNumeric:
		if math.IsNaN(v.Num) {
			return nil
		}
		return v.Num
	case table.TypeTimestamp:
		return v.Time.Format("2006-01-02")
	default:
		return v.Str
	}
}
