package plotly

import (
	"fmt"
	"math"

	"github.com/merwanroudane/plott/domain/table"
	"github.com/merwanroudane/plott/internal/errors"
)

// Kind selects the trace style for the animated figure.
type Kind string

const (
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindBar     Kind = "bar"
	KindArea    Kind = "area"
)

// Request describes one visualization: axes, trace style, the animation
// column to step through, and the advisory per-frame duration.
type Request struct {
	X               string
	Y               []string
	Kind            Kind
	AnimationColumn string
	SpeedMS         int
}

// Trace is one plotly data series.
type Trace struct {
	Type string        `json:"type"`
	Mode string        `json:"mode,omitempty"`
	Fill string        `json:"fill,omitempty"`
	Name string        `json:"name"`
	X    []interface{} `json:"x"`
	Y    []interface{} `json:"y"`
}

// Frame is one animation step, named by the animation column's value.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

// Figure is the plotly document handed to the browser: initial data, layout
// with animation controls, and the frame sequence.
type Figure struct {
	Data   []Trace                `json:"data"`
	Layout map[string]interface{} `json:"layout"`
	Frames []Frame                `json:"frames"`
}

const defaultSpeedMS = 500

// BuildFigure groups the dataset's rows by the animation column's distinct
// values in order of appearance and emits one frame per value. Column names
// are validated before any data is touched: a missing selection yields an
// INVALID_SELECTION error rather than a panic downstream.
func BuildFigure(ds table.Dataset, req Request) (*Figure, error) {
	if len(req.Y) == 0 {
		return nil, errors.InvalidInput("at least one y-axis column is required")
	}
	xi := ds.ColumnIndex(req.X)
	if xi < 0 {
		return nil, errors.InvalidSelection(req.X)
	}
	yi := make([]int, len(req.Y))
	for i, name := range req.Y {
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return nil, errors.InvalidSelection(name)
		}
		yi[i] = idx
	}
	ai := ds.ColumnIndex(req.AnimationColumn)
	if ai < 0 {
		return nil, errors.InvalidSelection(req.AnimationColumn)
	}
	traceType, mode, fill, err := traceStyle(req.Kind)
	if err != nil {
		return nil, err
	}
	if ds.NumRows() == 0 {
		return nil, errors.EmptyDataset("dataset has no rows to plot")
	}

	// Group row indices by animation value, preserving order of appearance.
	// Synthetic frame ids are already ascending; natural columns keep the
	// dataset's own ordering.
	var labels []string
	groups := make(map[string][]int)
	for r, row := range ds.Rows {
		key := row[ai].Display()
		if _, seen := groups[key]; !seen {
			labels = append(labels, key)
		}
		groups[key] = append(groups[key], r)
	}

	frames := make([]Frame, len(labels))
	for f, label := range labels {
		frames[f] = Frame{Name: label, Data: buildTraces(ds, groups[label], xi, yi, req.Y, traceType, mode, fill)}
	}

	speed := req.SpeedMS
	if speed <= 0 {
		speed = defaultSpeedMS
	}

	return &Figure{
		Data:   frames[0].Data,
		Layout: buildLayout(ds, req, xi, yi, labels, speed),
		Frames: frames,
	}, nil
}

func traceStyle(kind Kind) (traceType, mode, fill string, err error) {
	switch kind {
	case KindLine:
		return "scatter", "lines+markers", "", nil
	case KindScatter:
		return "scatter", "markers", "", nil
	case KindBar:
		return "bar", "", "", nil
	case KindArea:
		return "scatter", "lines", "tozeroy", nil
	default:
		return "", "", "", errors.InvalidInput(fmt.Sprintf("unsupported plot kind %q", kind))
	}
}

func buildTraces(ds table.Dataset, rows []int, xi int, yi []int, names []string, traceType, mode, fill string) []Trace {
	traces := make([]Trace, len(yi))
	for t, col := range yi {
		xs := make([]interface{}, len(rows))
		ys := make([]interface{}, len(rows))
		for i, r := range rows {
			xs[i] = jsValue(ds.Rows[r][xi])
			ys[i] = jsValue(ds.Rows[r][col])
		}
		traces[t] = Trace{Type: traceType, Mode: mode, Fill: fill, Name: names[t], X: xs, Y: ys}
	}
	return traces
}

// buildLayout fixes the axis ranges over the full dataset so frames don't
// rescale mid-animation, and wires the play/pause buttons and frame slider.
func buildLayout(ds table.Dataset, req Request, xi int, yi []int, labels []string, speed int) map[string]interface{} {
	xaxis := map[string]interface{}{"title": map[string]interface{}{"text": req.X}}
	if r, ok := axisRange(ds, []int{xi}); ok {
		xaxis["range"] = r
	}
	yaxis := map[string]interface{}{"title": map[string]interface{}{"text": "Value"}}
	if r, ok := axisRange(ds, yi); ok {
		yaxis["range"] = r
	}

	steps := make([]map[string]interface{}, len(labels))
	for i, label := range labels {
		steps[i] = map[string]interface{}{
			"label":  label,
			"method": "animate",
			"args": []interface{}{
				[]string{label},
				map[string]interface{}{
					"mode":       "immediate",
					"frame":      map[string]interface{}{"duration": 0, "redraw": true},
					"transition": map[string]interface{}{"duration": 0},
				},
			},
		}
	}

	return map[string]interface{}{
		"xaxis": xaxis,
		"yaxis": yaxis,
		"legend": map[string]interface{}{
			"title": map[string]interface{}{"text": "Variables"},
		},
		"updatemenus": []map[string]interface{}{{
			"type":       "buttons",
			"showactive": false,
			"x":          0.05,
			"y":          1.12,
			"buttons": []map[string]interface{}{
				{
					"label":  "Play",
					"method": "animate",
					"args": []interface{}{
						nil,
						map[string]interface{}{
							"fromcurrent": true,
							"frame":       map[string]interface{}{"duration": speed, "redraw": true},
							"transition":  map[string]interface{}{"duration": speed},
						},
					},
				},
				{
					"label":  "Pause",
					"method": "animate",
					"args": []interface{}{
						[]interface{}{nil},
						map[string]interface{}{
							"mode":       "immediate",
							"frame":      map[string]interface{}{"duration": 0, "redraw": false},
							"transition": map[string]interface{}{"duration": 0},
						},
					},
				},
			},
		}},
		"sliders": []map[string]interface{}{{
			"active": 0,
			"pad":    map[string]interface{}{"t": 40},
			"steps":  steps,
		}},
	}
}

// axisRange computes a shared [min, max] over the given columns, padded 5%.
// Only numeric and timestamp columns produce a range; text axes autoscale.
func axisRange(ds table.Dataset, cols []int) ([]interface{}, bool) {
	numMin, numMax := math.Inf(1), math.Inf(-1)
	var tsMin, tsMax = table.Value{}, table.Value{}
	sawNumeric, sawTimestamp := false, false

	for _, c := range cols {
		switch ds.Columns[c].Type {
		case table.TypeNumeric:
			for _, row := range ds.Rows {
				v := row[c].Num
				if math.IsNaN(v) {
					continue
				}
				sawNumeric = true
				numMin = math.Min(numMin, v)
				numMax = math.Max(numMax, v)
			}
		case table.TypeTimestamp:
			for _, row := range ds.Rows {
				t := row[c]
				if t.Time.IsZero() {
					continue
				}
				if !sawTimestamp || t.Time.Before(tsMin.Time) {
					tsMin = t
				}
				if !sawTimestamp || t.Time.After(tsMax.Time) {
					tsMax = t
				}
				sawTimestamp = true
			}
		}
	}

	if sawTimestamp && !sawNumeric {
		return []interface{}{jsValue(tsMin), jsValue(tsMax)}, true
	}
	if sawNumeric {
		pad := (numMax - numMin) * 0.05
		return []interface{}{numMin - pad, numMax + pad}, true
	}
	return nil, false
}

// jsValue converts a cell into its JSON representation: numbers stay
// numbers (NaN becomes null), timestamps become ISO strings, text passes
// through.
func jsValue(v table.Value) interface{} {
	switch v.Kind {
	case table.TypeNumeric:
		if math.IsNaN(v.Num) {
			return nil
		}
		return v.Num
	case table.TypeTimestamp:
		return v.Time.Format("2006-01-02T15:04:05")
	default:
		return v.Str
	}
}
