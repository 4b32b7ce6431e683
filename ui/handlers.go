package ui

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/merwanroudane/plott/adapters/excel"
	"github.com/merwanroudane/plott/adapters/plotly"
	"github.com/merwanroudane/plott/domain/table"
	"github.com/merwanroudane/plott/internal/errors"
	"github.com/merwanroudane/plott/internal/exampledata"
	"github.com/merwanroudane/plott/ports"
)

// columnInfo describes one column for the selection controls.
type columnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// fieldSummary carries per-numeric-column summary statistics for the
// preview panel.
type fieldSummary struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// datasetSummary is the response to a successful upload or example load.
type datasetSummary struct {
	Name            string         `json:"name"`
	RowCount        int            `json:"row_count"`
	Columns         []columnInfo   `json:"columns"`
	NumericColumns  []string       `json:"numeric_columns"`
	DatetimeColumns []string       `json:"datetime_columns"`
	Preview         [][]string     `json:"preview"`
	Stats           []fieldSummary `json:"stats"`
}

// figureRequest is the visualization request from the control surface.
type figureRequest struct {
	X               string   `json:"x_column"`
	Y               []string `json:"y_columns"`
	Kind            string   `json:"plot_kind"`
	AnimationColumn string   `json:"animation_column"`
	StartRow        int      `json:"start_row"`
	SpeedMS         int      `json:"speed_ms"`
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", indexData{
		Guide:         a.guide,
		MaxFrames:     a.cfg.Data.MaxFrames,
		LedgerEnabled: a.ledger != nil,
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleUpload ingests an uploaded spreadsheet, classifies its columns and
// makes it the current dataset.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(a.cfg.Data.MaxUploadBytes); err != nil {
		writeError(w, errors.InvalidInput("file too large"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.InvalidInput("no file uploaded"))
		return
	}
	defer file.Close()

	filename := strings.ToLower(header.Filename)
	if !strings.HasSuffix(filename, ".csv") &&
		!strings.HasSuffix(filename, ".xlsx") &&
		!strings.HasSuffix(filename, ".xls") {
		writeError(w, errors.InvalidInput("only .xlsx, .xls and .csv files are allowed"))
		return
	}
	if header.Size > a.cfg.Data.MaxUploadBytes {
		writeError(w, errors.InvalidInput("file exceeds the upload size limit"))
		return
	}

	ds, err := excel.NewReader(header.Filename).Read(file)
	if err != nil {
		writeError(w, errors.Wrap(errors.InvalidInput(err.Error()), "failed to read spreadsheet"))
		return
	}
	if ds.NumRows() > a.cfg.Data.MaxRows {
		writeError(w, errors.InvalidInput("dataset has too many rows"))
		return
	}

	a.loadDataset(r.Context(), w, header.Filename, "upload", ds)
}

// handleExample loads the generated demo dataset as the current dataset.
func (a *App) handleExample(w http.ResponseWriter, r *http.Request) {
	ds := exampledata.Generate(exampledata.DefaultConfig())
	a.loadDataset(r.Context(), w, "example_data.xlsx", "example", ds)
}

// handleExampleDownload serves the demo dataset as a workbook.
func (a *App) handleExampleDownload(w http.ResponseWriter, r *http.Request) {
	buf, err := excel.WriteWorkbook(exampledata.Generate(exampledata.DefaultConfig()))
	if err != nil {
		a.log.Error("example workbook: %v", err)
		writeError(w, errors.Wrap(err, "failed to build example workbook"))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="example_data.xlsx"`)
	w.Write(buf.Bytes())
}

// loadDataset classifies, stores and summarizes a freshly ingested dataset.
// Classification may retype text columns to timestamp; the retyped dataset
// is what gets stored.
func (a *App) loadDataset(ctx context.Context, w http.ResponseWriter, name, source string, ds table.Dataset) {
	ds, cls := table.Classify(ds)
	a.setCurrent(name, ds, cls)
	a.recordUpload(ctx, name, source, ds)
	a.log.Info("dataset %q loaded (%d columns, %d rows)", name, len(ds.Columns), ds.NumRows())
	writeJSON(w, http.StatusOK, summarize(name, ds, cls, a.cfg.Data.PreviewRows))
}

// recordUpload writes to the upload ledger when one is configured. Ledger
// failures are logged, never surfaced: history is a convenience, not part of
// the upload contract.
func (a *App) recordUpload(ctx context.Context, name, source string, ds table.Dataset) {
	if a.ledger == nil {
		return
	}
	rec := ports.UploadRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Source:      source,
		RowCount:    ds.NumRows(),
		ColumnCount: len(ds.Columns),
		UploadedAt:  time.Now().UTC(),
	}
	if err := a.ledger.Record(ctx, rec); err != nil {
		a.log.Warn("upload ledger record failed: %v", err)
	}
}

// handleFigure runs one visualization pass: synthetic frame expansion when
// no animation column is selected, passthrough otherwise, then the figure
// build. Requests are serialized; there is no concurrent recomputation.
func (a *App) handleFigure(w http.ResponseWriter, r *http.Request) {
	if err := a.vizSem.Acquire(r.Context(), 1); err != nil {
		writeError(w, errors.InvalidInput("request cancelled"))
		return
	}
	defer a.vizSem.Release(1)

	var req figureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("malformed figure request"))
		return
	}

	cur := a.getCurrent()
	if cur == nil {
		writeError(w, errors.EmptyDataset("no dataset loaded; upload a file or load the example data"))
		return
	}

	ds := cur.Dataset
	animCol := req.AnimationColumn
	if animCol == "" {
		// Synthetic-frame mode: sort by the x column when it is a
		// timestamp, then expand cumulative prefixes.
		ds = table.Expand(ds, table.FrameSpec{
			OrderBy:   req.X,
			StartRow:  req.StartRow,
			MaxFrames: a.cfg.Data.MaxFrames,
		})
		animCol = table.FrameColumn
	}

	fig, err := plotly.BuildFigure(ds, plotly.Request{
		X:               req.X,
		Y:               req.Y,
		Kind:            plotly.Kind(req.Kind),
		AnimationColumn: animCol,
		SpeedMS:         req.SpeedMS,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

// handleUploads lists the upload history when the ledger is configured.
func (a *App) handleUploads(w http.ResponseWriter, r *http.Request) {
	if a.ledger == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"enabled": false, "uploads": []ports.UploadRecord{}})
		return
	}
	records, err := a.ledger.List(r.Context(), 20)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"enabled": true, "uploads": records})
}

// summarize builds the upload response: column metadata, classification,
// preview rows and numeric summary statistics.
func summarize(name string, ds table.Dataset, cls table.Classification, previewRows int) datasetSummary {
	summary := datasetSummary{
		Name:            name,
		RowCount:        ds.NumRows(),
		Columns:         make([]columnInfo, len(ds.Columns)),
		NumericColumns:  cls.Numeric,
		DatetimeColumns: cls.Datetime,
	}
	for i, c := range ds.Columns {
		summary.Columns[i] = columnInfo{Name: c.Name, Type: string(c.Type)}
	}

	n := previewRows
	if n > ds.NumRows() {
		n = ds.NumRows()
	}
	summary.Preview = make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(ds.Columns))
		for j, v := range ds.Rows[i] {
			row[j] = v.Display()
		}
		summary.Preview[i] = row
	}

	for j, c := range ds.Columns {
		if c.Type != table.TypeNumeric {
			continue
		}
		values := make([]float64, 0, ds.NumRows())
		for _, row := range ds.Rows {
			if v := row[j].Num; !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		mean, _ := stats.Mean(values)
		stdDev, _ := stats.StandardDeviation(values)
		minVal, _ := stats.Min(values)
		maxVal, _ := stats.Max(values)
		median, _ := stats.Median(values)
		summary.Stats = append(summary.Stats, fieldSummary{
			Name:   c.Name,
			Mean:   mean,
			StdDev: stdDev,
			Min:    minVal,
			Max:    maxVal,
			Median: median,
		})
	}
	return summary
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps AppError codes onto HTTP statuses and emits a structured
// error body the page can show and retry from.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput, errors.CodeInvalidSelection:
		status = http.StatusBadRequest
	case errors.CodeEmptyDataset:
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": code})
}
