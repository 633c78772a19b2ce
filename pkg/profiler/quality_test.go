package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityScoreCleanData(t *testing.T) {
	profiles := map[string]*ColumnProfile{
		"a": {Count: 100, NullPercentage: 0, Dtype: DtypeNumeric, Numeric: &NumericStats{}},
		"b": {Count: 100, NullPercentage: 0, Dtype: DtypeString},
	}
	missing := map[string]MissingPattern{
		"a": {Pattern: MissingNone},
		"b": {Pattern: MissingNone},
	}

	score := qualityScore(profiles, nil, missing)
	assert.Greater(t, score, 90.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestQualityScoreDirtyData(t *testing.T) {
	// 50% random-missing everywhere plus heavy outliers.
	profiles := map[string]*ColumnProfile{
		"a": {
			Count:          100,
			NullPercentage: 50,
			Dtype:          DtypeNumeric,
			Numeric:        &NumericStats{Outliers: OutlierSummary{Count: 30}},
		},
		"b": {Count: 100, NullPercentage: 50, Dtype: DtypeString},
	}
	missing := map[string]MissingPattern{
		"a": {Pattern: MissingRandom, Count: 50, Percentage: 50},
		"b": {Pattern: MissingRandom, Count: 50, Percentage: 50},
	}

	// Contributions: completeness 50+50, outlier 100-min(300,100)=0,
	// missing 25+25 -> mean 30.
	score := qualityScore(profiles, nil, missing)
	assert.Less(t, score, 60.0)
	assert.InDelta(t, 30.0, score, 0.001)
}

func TestQualityScoreMissingPenalties(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		pct      float64
		expected float64
	}{
		{"random", MissingRandom, 20, 100 - 20*1.5},
		{"systematic", MissingSystematic, 20, 100 - 20*0.7},
		{"block is not penalized", MissingBlock, 20, 100},
		{"none", MissingNone, 0, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profiles := map[string]*ColumnProfile{
				"a": {Count: 100, NullPercentage: tc.pct, Dtype: DtypeString},
			}
			missing := map[string]MissingPattern{
				"a": {Pattern: tc.pattern, Percentage: tc.pct},
			}
			// Two contributions: completeness and the missing penalty.
			score := qualityScore(profiles, nil, missing)
			assert.InDelta(t, ((100-tc.pct)+tc.expected)/2, score, 0.001)
		})
	}
}

func TestQualityScoreOutlierPenaltyCap(t *testing.T) {
	// 30% outliers: the 10x penalty saturates at 100.
	profiles := map[string]*ColumnProfile{
		"a": {
			Count:   100,
			Dtype:   DtypeNumeric,
			Numeric: &NumericStats{Outliers: OutlierSummary{Count: 30}},
		},
	}
	missing := map[string]MissingPattern{"a": {Pattern: MissingNone}}

	// Contributions: 100 (completeness), 0 (outliers), 100 (missing).
	score := qualityScore(profiles, nil, missing)
	assert.InDelta(t, 200.0/3, score, 0.001)
}

func TestQualityScoreEmptyInputsDefaultTo100(t *testing.T) {
	assert.Equal(t, 100.0, qualityScore(nil, nil, nil))
}
