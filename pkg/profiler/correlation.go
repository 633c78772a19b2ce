package profiler

import (
	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// correlate computes the pairwise Pearson matrix over all numeric-storage
// columns. Selection uses the raw storage test, not the semantic dtype:
// string-encoded numbers do not participate. Fewer than two numeric columns
// yields an empty matrix, and no column is paired with itself.
//
// Pairs are computed over rows where both cells are present. A zero-variance
// column produces NaN entries, which callers rendering the result must
// tolerate.
func correlate(table *dataset.Table) map[string]map[string]float64 {
	numeric := make([]dataset.Column, 0)
	for _, col := range table.Columns() {
		if col.NumericStorage() {
			numeric = append(numeric, col)
		}
	}

	out := make(map[string]map[string]float64)
	if len(numeric) < 2 {
		return out
	}

	for _, a := range numeric {
		out[a.Name] = make(map[string]float64)
		for _, b := range numeric {
			if a.Name == b.Name {
				continue
			}
			out[a.Name][b.Name] = pairwisePearson(a, b)
		}
	}
	return out
}

func pairwisePearson(a, b dataset.Column) float64 {
	xs := make([]float64, 0, len(a.Cells))
	ys := make([]float64, 0, len(b.Cells))
	for i := range a.Cells {
		if a.Cells[i] == nil || b.Cells[i] == nil {
			continue
		}
		x, okA := dataset.AsFloat(a.Cells[i])
		y, okB := dataset.AsFloat(b.Cells[i])
		if okA && okB {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return pearson(xs, ys)
}
