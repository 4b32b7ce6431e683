package exampledata

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/merwanroudane/plott/domain/table"
)

// Config controls the demo dataset generator.
type Config struct {
	Days      int
	Start     time.Time
	Companies []string
	Seed      uint64
}

// DefaultConfig mirrors the stocks-style demo series shipped with the app:
// 100 daily observations for five companies.
func DefaultConfig() Config {
	return Config{
		Days:      100,
		Start:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Companies: []string{"Company A", "Company B", "Company C", "Company D", "Company E"},
		Seed:      42,
	}
}

// Per-company starting levels and daily volatilities, cycled when the config
// asks for more companies than the table provides.
var (
	baseLevels   = []float64{100, 150, 200, 120, 180}
	volatilities = []float64{3.0, 2.0, 4.0, 2.5, 3.2}
)

// Generate builds a deterministic random-walk dataset: one timestamp column
// plus one numeric column per company. The same seed always yields the same
// dataset, which keeps the example download stable across requests.
func Generate(cfg Config) table.Dataset {
	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	step := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	columns := make([]table.Column, 0, len(cfg.Companies)+1)
	columns = append(columns, table.Column{Name: "date", Type: table.TypeTimestamp})
	for _, name := range cfg.Companies {
		columns = append(columns, table.Column{Name: name, Type: table.TypeNumeric})
	}

	levels := make([]float64, len(cfg.Companies))
	for i := range levels {
		levels[i] = baseLevels[i%len(baseLevels)]
	}

	rows := make([]table.Row, cfg.Days)
	for d := 0; d < cfg.Days; d++ {
		row := make(table.Row, len(columns))
		row[0] = table.Timestamp(cfg.Start.AddDate(0, 0, d))
		for i := range cfg.Companies {
			levels[i] += step.Rand() * volatilities[i%len(volatilities)]
			row[i+1] = table.Number(levels[i])
		}
		rows[d] = row
	}
	return table.Dataset{Columns: columns, Rows: rows}
}
