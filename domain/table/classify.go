package table

import "time"

// Classification is a read-only view of which columns can drive axis and
// animation selection: numeric columns for y-axes, datetime columns for
// x-axes and ordering.
type Classification struct {
	Numeric  []string
	Datetime []string
}

// timestampFormats is the fixed set of accepted datetime layouts. A text
// column is upgraded to timestamp only when every value parses against one
// of these.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// ParseTimestamp attempts to parse s against the accepted layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classify inspects a dataset and returns its column classification. The
// input is never mutated: when a text column is coerced to timestamp the
// returned dataset is a retyped copy, and callers must pass it forward.
//
// Coercion runs only when no column is already typed timestamp. A text
// column joins the datetime set only if every value parses; a single
// unparseable value excludes the column silently. The upgrade is one-way
// and idempotent: a second Classify sees the timestamp type directly and
// skips the coercion pass.
func Classify(ds Dataset) (Dataset, Classification) {
	var cls Classification
	for _, c := range ds.Columns {
		switch c.Type {
		case TypeNumeric:
			cls.Numeric = append(cls.Numeric, c.Name)
		case TypeTimestamp:
			cls.Datetime = append(cls.Datetime, c.Name)
		}
	}
	if len(cls.Datetime) > 0 {
		return ds, cls
	}

	upgraded := ds
	copied := false
	for i, c := range ds.Columns {
		if c.Type != TypeText {
			continue
		}
		parsed, ok := parseTimestampColumn(ds, i)
		if !ok {
			continue
		}
		if !copied {
			upgraded = ds.Clone()
			copied = true
		}
		upgraded.Columns[i].Type = TypeTimestamp
		for r := range upgraded.Rows {
			upgraded.Rows[r][i] = Timestamp(parsed[r])
		}
		cls.Datetime = append(cls.Datetime, c.Name)
	}
	return upgraded, cls
}

// parseTimestampColumn parses every value of the text column at index col.
// It fails as soon as one value does not parse.
func parseTimestampColumn(ds Dataset, col int) ([]time.Time, bool) {
	if ds.NumRows() == 0 {
		return nil, false
	}
	parsed := make([]time.Time, len(ds.Rows))
	for r, row := range ds.Rows {
		t, ok := ParseTimestamp(row[col].Str)
		if !ok {
			return nil, false
		}
		parsed[r] = t
	}
	return parsed, true
}
