package data

import (
	"fmt"

	"github.com/udisondev/pkmbattle/internal/model"
)

// TypeChart is the single-type effectiveness table,
// indexed [attacking][defending].
type TypeChart struct {
	cells [model.TypeCount][model.TypeCount]float64
}

// NewTypeChart builds a chart from rows of attacking types.
func NewTypeChart(cells [model.TypeCount][model.TypeCount]float64) (TypeChart, error) {
	for att := range cells {
		for def, v := range cells[att] {
			if !isChartValue(v) {
				return TypeChart{}, fmt.Errorf("%s vs %s = %v: %w",
					model.Type(att), model.Type(def), v, ErrMalformedRecord)
			}
		}
	}
	return TypeChart{cells: cells}, nil
}

// Multiplier returns the factor applied when attacking hits defending.
func (c TypeChart) Multiplier(attacking, defending model.Type) float64 {
	return c.cells[attacking][defending]
}

// Column returns the defensive vector of a single type: one factor per
// attacking type, in canonical order.
func (c TypeChart) Column(defending model.Type) [model.TypeCount]float64 {
	var col [model.TypeCount]float64
	for att := range c.cells {
		col[att] = c.cells[att][defending]
	}
	return col
}

// Row returns the offensive vector of an attacking type.
func (c TypeChart) Row(attacking model.Type) [model.TypeCount]float64 {
	return c.cells[attacking]
}

// chartValues is the discrete set a single-type cell may take.
var chartValues = [...]float64{0, 0.25, 0.5, 1, 2, 4}

func isChartValue(v float64) bool {
	for _, c := range chartValues {
		if v == c {
			return true
		}
	}
	return false
}
