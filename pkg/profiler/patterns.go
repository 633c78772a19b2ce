package profiler

import (
	"regexp"

	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// PatternFlags are independent signals about a column's likely semantic
// role. Several may be true at once. Flags that do not apply to a column's
// content (the string-only checks on a non-string column, every flag on an
// all-missing column) stay nil and are omitted from output.
type PatternFlags struct {
	IsEmail       *bool `json:"is_email,omitempty" yaml:"is_email,omitempty"`
	IsPhone       *bool `json:"is_phone,omitempty" yaml:"is_phone,omitempty"`
	IsDate        *bool `json:"is_date,omitempty" yaml:"is_date,omitempty"`
	IsID          *bool `json:"is_id,omitempty" yaml:"is_id,omitempty"`
	IsCategorical *bool `json:"is_categorical,omitempty" yaml:"is_categorical,omitempty"`
	IsContinuous  *bool `json:"is_continuous,omitempty" yaml:"is_continuous,omitempty"`
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[+\-()\d\s]+$`)

	// One entry per accepted string date shape: YYYY-MM-DD, MM/DD/YYYY,
	// DD-MM-YYYY, YYYY/MM/DD.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
		regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
		regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),
	}
)

// categorical rule constants: few distinct values outright, or a low
// distinct ratio with a bounded absolute count.
const (
	categoricalMaxUnique      = 10
	categoricalMaxRatio       = 0.05
	categoricalRatioMaxUnique = 50
)

// continuousMinRatio is the minimum distinct-numeric-to-total ratio for a
// column to read as continuous.
const continuousMinRatio = 0.5

// detectPatterns scores a column against the pattern predicates. dtype is
// the column's semantic classification; threshold is the minimum match
// ratio for the regex-based flags.
func detectPatterns(col dataset.Column, dtype Dtype, threshold float64) PatternFlags {
	flags := PatternFlags{}

	nonNull := col.NonNull()
	if len(nonNull) == 0 {
		return flags
	}
	total := len(col.Cells)

	// The regex flags and the uniqueness flag only mean anything on string
	// content.
	if allOf(head(nonNull, classifySampleSize), isString) {
		flags.IsEmail = boolPtr(matchRatio(nonNull, emailPattern) >= threshold)
		flags.IsPhone = boolPtr(matchRatio(nonNull, phonePattern) >= threshold)

		if dtype == DtypeDatetime {
			flags.IsDate = boolPtr(true)
		} else {
			matches := 0
			for _, p := range datePatterns {
				matches += countMatches(nonNull, p)
			}
			flags.IsDate = boolPtr(float64(matches)/float64(len(nonNull)) >= threshold)
		}

		// An ID column has one distinct value per row, nulls included in
		// the row count: any missing entry disqualifies it.
		if distinct, ok := distinctValues(nonNull); ok {
			flags.IsID = boolPtr(len(distinct) == total)
		} else {
			flags.IsID = boolPtr(false)
		}
	}

	if distinct, ok := distinctValues(nonNull); ok {
		uc := len(distinct)
		ratio := float64(uc) / float64(total)
		flags.IsCategorical = boolPtr(uc <= categoricalMaxUnique ||
			(ratio < categoricalMaxRatio && uc < categoricalRatioMaxUnique))
	} else {
		flags.IsCategorical = boolPtr(false)
	}

	flags.IsContinuous = boolPtr(isContinuous(col, nonNull))
	return flags
}

// isContinuous checks for numeric content with high cardinality. Columns
// holding container cells are never continuous; a lenient numeric cast
// cannot be applied to them.
func isContinuous(col dataset.Column, nonNull []any) bool {
	for _, v := range nonNull {
		if dataset.IsContainer(v) {
			return false
		}
	}
	distinct := make(map[float64]struct{})
	coerced := 0
	for _, v := range nonNull {
		if f, ok := coerceNumeric(v); ok {
			coerced++
			distinct[f] = struct{}{}
		}
	}
	if coerced == 0 {
		return false
	}
	return float64(len(distinct))/float64(len(col.Cells)) > continuousMinRatio
}

func countMatches(values []any, p *regexp.Regexp) int {
	n := 0
	for _, v := range values {
		if s, ok := v.(string); ok && p.MatchString(s) {
			n++
		}
	}
	return n
}

func matchRatio(values []any, p *regexp.Regexp) float64 {
	return float64(countMatches(values, p)) / float64(len(values))
}

func boolPtr(b bool) *bool { return &b }
