package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/merwanroudane/plott/domain/table"
)

// Reader ingests Excel and CSV uploads into a typed Dataset.
type Reader struct {
	name     string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given filename; the extension selects
// the format (.csv is CSV, anything else is treated as a workbook).
func NewReader(name string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(name)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{name: name, fileType: fileType}
}

// Read parses the stream into a Dataset. The first row is the header; blank
// header cells get positional names. Columns whose every non-empty value
// parses as a number are typed numeric at ingest; everything else stays text
// (timestamp detection is the classifier's job).
func (r *Reader) Read(src io.Reader) (table.Dataset, error) {
	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = readCSVRows(src)
	default:
		rows, err = readWorkbookRows(src)
	}
	if err != nil {
		return table.Dataset{}, err
	}
	if len(rows) < 2 {
		return table.Dataset{}, fmt.Errorf("%s must have a header row and at least one data row", r.fileType)
	}

	ds := buildDataset(rows[0], rows[1:])
	log.Printf("[Reader] %s file %q processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), r.name, len(ds.Columns), ds.NumRows())
	return ds, nil
}

func readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

func readWorkbookRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// buildDataset normalizes headers and rows into a Dataset with per-column
// ingest typing.
func buildDataset(headerRow []string, raw [][]string) table.Dataset {
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	// Ragged rows are padded so every row has one cell per header.
	cells := make([][]string, len(raw))
	for i, row := range raw {
		padded := make([]string, len(headers))
		for j := range headers {
			if j < len(row) {
				padded[j] = strings.TrimSpace(row[j])
			}
		}
		cells[i] = padded
	}

	ds := table.Dataset{
		Columns: make([]table.Column, len(headers)),
		Rows:    make([]table.Row, len(cells)),
	}
	numeric := make([]bool, len(headers))
	for j := range headers {
		numeric[j] = columnIsNumeric(cells, j)
		colType := table.TypeText
		if numeric[j] {
			colType = table.TypeNumeric
		}
		ds.Columns[j] = table.Column{Name: headers[j], Type: colType}
	}

	for i, row := range cells {
		typed := make(table.Row, len(headers))
		for j, cell := range row {
			if numeric[j] {
				if cell == "" {
					typed[j] = table.Number(math.NaN())
				} else {
					v, _ := strconv.ParseFloat(cell, 64)
					typed[j] = table.Number(v)
				}
			} else {
				typed[j] = table.Text(cell)
			}
		}
		ds.Rows[i] = typed
	}
	return ds
}

// columnIsNumeric requires every non-empty value to parse as a float, and at
// least one non-empty value overall. A column in the numeric set carries
// 100% numeric values.
func columnIsNumeric(cells [][]string, col int) bool {
	nonEmpty := 0
	for _, row := range cells {
		v := row[col]
		if v == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return nonEmpty > 0
}
