package exampledata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merwanroudane/plott/domain/table"
)

func TestGenerateShape(t *testing.T) {
	ds := Generate(DefaultConfig())

	require.Len(t, ds.Columns, 6)
	assert.Equal(t, table.Column{Name: "date", Type: table.TypeTimestamp}, ds.Columns[0])
	assert.Equal(t, table.TypeNumeric, ds.Columns[1].Type)
	assert.Equal(t, 100, ds.NumRows())

	// Dates are consecutive days from the start.
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ds.Rows[0][0].Time)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), ds.Rows[1][0].Time)
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(DefaultConfig())
	b := Generate(DefaultConfig())
	assert.Equal(t, a, b)

	cfg := DefaultConfig()
	cfg.Seed = 7
	c := Generate(cfg)
	assert.NotEqual(t, a.Rows[10][1].Num, c.Rows[10][1].Num)
}

func TestGenerateClassifiesCleanly(t *testing.T) {
	_, cls := table.Classify(Generate(DefaultConfig()))

	assert.Equal(t, []string{"date"}, cls.Datetime)
	assert.Len(t, cls.Numeric, 5)
}
