package profiler

import (
	"math/rand"
	"sort"

	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// sampleSeed makes sampling reproducible across runs. It is passed
// explicitly into sampleTable so tests can vary it.
const sampleSeed int64 = 42

// sampleTable draws n rows without replacement using a seeded RNG and
// rebuilds them in ascending original order, so positional analyses
// (missing patterns, outlier indices) remain meaningful on the sample.
// Tables at or under n rows are returned unchanged.
func sampleTable(table *dataset.Table, n int, seed int64) *dataset.Table {
	if table.Rows() <= n {
		return table
	}
	rng := rand.New(rand.NewSource(seed))
	rows := rng.Perm(table.Rows())[:n]
	sort.Ints(rows)
	return table.Select(rows)
}
