package profiler

// Quality score penalties. Outlier share is penalized tenfold; random
// missingness hurts more than systematic missingness.
const (
	outlierPenaltyFactor    = 10.0
	randomMissingPenalty    = 1.5
	systematicMissingFactor = 0.7
)

// qualityScore aggregates completeness, outlier severity, and
// missing-pattern severity into one 0-100 score. Every applicable rule adds
// one contribution per column; the score is their unweighted mean, 100.0
// when nothing contributes.
func qualityScore(
	profiles map[string]*ColumnProfile,
	correlations map[string]map[string]float64,
	missingPatterns map[string]MissingPattern,
) float64 {
	scores := make([]float64, 0, 3*len(profiles))

	for _, p := range profiles {
		scores = append(scores, 100-p.NullPercentage)
	}

	for _, p := range profiles {
		if p.Dtype != DtypeNumeric || p.Numeric == nil {
			continue
		}
		outlierPct := float64(p.Numeric.Outliers.Count) / float64(p.Count) * 100
		penalty := outlierPct * outlierPenaltyFactor
		if penalty > 100 {
			penalty = 100
		}
		scores = append(scores, 100-penalty)
	}

	for _, mp := range missingPatterns {
		switch mp.Pattern {
		case MissingRandom:
			scores = append(scores, 100-mp.Percentage*randomMissingPenalty)
		case MissingSystematic:
			scores = append(scores, 100-mp.Percentage*systematicMissingFactor)
		default:
			scores = append(scores, 100)
		}
	}

	if len(scores) == 0 {
		return 100.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
