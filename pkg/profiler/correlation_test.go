package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

func TestCorrelateLinearRelationships(t *testing.T) {
	a := make([]any, 0, 50)
	b := make([]any, 0, 50)
	c := make([]any, 0, 50)
	for i := 0; i < 50; i++ {
		x := float64(i)
		a = append(a, x)
		b = append(b, 2*x+5)
		c = append(c, -x+10)
	}
	table := dataset.MustNew(
		dataset.Column{Name: "a", Cells: a},
		dataset.Column{Name: "b", Cells: b},
		dataset.Column{Name: "c", Cells: c},
	)

	corr := correlate(table)
	require.Contains(t, corr, "a")
	assert.InDelta(t, 1.0, corr["a"]["b"], 0.01)
	assert.InDelta(t, -1.0, corr["a"]["c"], 0.01)
	assert.InDelta(t, -1.0, corr["b"]["c"], 0.01)

	// Symmetry and no self-pairs.
	assert.Equal(t, corr["a"]["b"], corr["b"]["a"])
	assert.NotContains(t, corr["a"], "a")
}

func TestCorrelateRequiresTwoNumericColumns(t *testing.T) {
	table := dataset.MustNew(
		dataset.Column{Name: "n", Cells: []any{1, 2, 3}},
		dataset.Column{Name: "s", Cells: []any{"a", "b", "c"}},
	)
	assert.Empty(t, correlate(table))
}

func TestCorrelateUsesStorageTypeNotSemanticDtype(t *testing.T) {
	// "b" is semantically numeric but stored as strings; it must not
	// participate.
	table := dataset.MustNew(
		dataset.Column{Name: "a", Cells: []any{1, 2, 3}},
		dataset.Column{Name: "b", Cells: []any{"1", "2", "3"}},
		dataset.Column{Name: "c", Cells: []any{2, 4, 6}},
	)

	corr := correlate(table)
	require.Contains(t, corr, "a")
	assert.NotContains(t, corr, "b")
	assert.InDelta(t, 1.0, corr["a"]["c"], 0.01)
}

func TestCorrelatePairwiseCompleteRows(t *testing.T) {
	table := dataset.MustNew(
		dataset.Column{Name: "a", Cells: []any{1, 2, nil, 4, 5}},
		dataset.Column{Name: "b", Cells: []any{2, 4, 6, 8, nil}},
	)

	corr := correlate(table)
	require.Contains(t, corr, "a")
	// Rows 0,1,3 pair up; they are perfectly linear.
	assert.InDelta(t, 1.0, corr["a"]["b"], 0.01)
}

func TestPearsonDegenerate(t *testing.T) {
	assert.True(t, isNaN(pearson([]float64{1}, []float64{2})))
	assert.True(t, isNaN(pearson([]float64{3, 3, 3}, []float64{1, 2, 3})))
}

func isNaN(f float64) bool { return f != f }
