package profiler

import (
	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// Missing-value pattern labels.
const (
	MissingNone       = "none"
	MissingAll        = "all_missing"
	MissingBlock      = "block"
	MissingSystematic = "systematic"
	MissingRandom     = "random"
)

// MissingPattern records how a column's missing cells are distributed.
type MissingPattern struct {
	Pattern    string  `json:"pattern" yaml:"pattern"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// analyzeMissing classifies the null positions of every column.
func analyzeMissing(table *dataset.Table) map[string]MissingPattern {
	out := make(map[string]MissingPattern, table.Cols())
	for _, col := range table.Columns() {
		nullIndices := make([]int, 0)
		for i, cell := range col.Cells {
			if cell == nil {
				nullIndices = append(nullIndices, i)
			}
		}

		switch {
		case len(nullIndices) == 0:
			out[col.Name] = MissingPattern{Pattern: MissingNone}
		case len(nullIndices) == len(col.Cells):
			out[col.Name] = MissingPattern{
				Pattern:    MissingAll,
				Count:      len(nullIndices),
				Percentage: 100,
			}
		default:
			out[col.Name] = MissingPattern{
				Pattern:    classifyNullPositions(nullIndices),
				Count:      len(nullIndices),
				Percentage: float64(len(nullIndices)) / float64(len(col.Cells)) * 100,
			}
		}
	}
	return out
}

// classifyNullPositions labels a non-empty, non-total set of null row
// positions: a leading run is a block, equal gaps are systematic, anything
// else is random.
func classifyNullPositions(nullIndices []int) string {
	leading := true
	for i, idx := range nullIndices {
		if idx != i {
			leading = false
			break
		}
	}
	if leading {
		return MissingBlock
	}

	if len(nullIndices) > 1 {
		gap := nullIndices[1] - nullIndices[0]
		uniform := true
		for i := 2; i < len(nullIndices); i++ {
			if nullIndices[i]-nullIndices[i-1] != gap {
				uniform = false
				break
			}
		}
		if uniform {
			return MissingSystematic
		}
	}
	return MissingRandom
}
