package profiler

import (
	"fmt"
	"sort"
	"time"

	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// ColumnProfile summarizes one column. Exactly one dtype-specific section is
// populated, matching Dtype; all sections are nil for all_null columns.
type ColumnProfile struct {
	Count          int     `json:"count" yaml:"count"`
	NullCount      int     `json:"null_count" yaml:"null_count"`
	NullPercentage float64 `json:"null_percentage" yaml:"null_percentage"`
	Dtype          Dtype   `json:"dtype" yaml:"dtype"`

	// SuggestedType comes from the learning history, when one is configured
	// and has seen this column name before.
	SuggestedType string `json:"suggested_type,omitempty" yaml:"suggested_type,omitempty"`

	Numeric  *NumericStats  `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	String   *StringStats   `json:"string,omitempty" yaml:"string,omitempty"`
	Datetime *DatetimeStats `json:"datetime,omitempty" yaml:"datetime,omitempty"`
	Boolean  *BooleanStats  `json:"boolean,omitempty" yaml:"boolean,omitempty"`
	Mixed    *MixedStats    `json:"mixed,omitempty" yaml:"mixed,omitempty"`
	Object   *ObjectStats   `json:"object,omitempty" yaml:"object,omitempty"`
}

// NumericStats are the summary statistics for numeric columns. StdDev is the
// sample (n-1) standard deviation and is 0.0 for single-valued columns.
type NumericStats struct {
	Mean     float64         `json:"mean" yaml:"mean"`
	Median   float64         `json:"median" yaml:"median"`
	StdDev   float64         `json:"std_dev" yaml:"std_dev"`
	Min      float64         `json:"min" yaml:"min"`
	Max      float64         `json:"max" yaml:"max"`
	Q1       float64         `json:"q1" yaml:"q1"`
	Q3       float64         `json:"q3" yaml:"q3"`
	Outliers OutlierSummary  `json:"outliers" yaml:"outliers"`
}

// OutlierSummary reports values outside the IQR fence. Values and Indices
// are capped at the first 100 hits; Indices are original row positions.
type OutlierSummary struct {
	Count   int       `json:"count" yaml:"count"`
	Values  []float64 `json:"values" yaml:"values"`
	Indices []int     `json:"indices" yaml:"indices"`
}

// iqrMultiplier widens the classic 1.5 IQR fence. Business data carries
// natural variance; the wider fence keeps routine spikes out of the outlier
// list.
const iqrMultiplier = 2.0

// outlierCap bounds how many outlier values and indices are reported.
const outlierCap = 100

// ValueCount is one entry of a most-common-values ranking.
type ValueCount struct {
	Value any `json:"value" yaml:"value"`
	Count int `json:"count" yaml:"count"`
}

// StringStats are the summary statistics for string columns. Cardinality
// fields are nil when the column holds unhashable cells.
type StringStats struct {
	UniqueCount      *int         `json:"unique_count" yaml:"unique_count"`
	UniquePercentage *float64     `json:"unique_percentage" yaml:"unique_percentage"`
	MostCommonValues []ValueCount `json:"most_common_values" yaml:"most_common_values"`
	IsPotentialID    bool         `json:"is_potential_id" yaml:"is_potential_id"`
	AvgLength        *float64     `json:"avg_length" yaml:"avg_length"`
	MinLength        *int         `json:"min_length" yaml:"min_length"`
	MaxLength        *int         `json:"max_length" yaml:"max_length"`
}

// DatetimeStats are the summary statistics for datetime columns.
type DatetimeStats struct {
	DateRange DateRange `json:"date_range" yaml:"date_range"`
	Frequency string    `json:"frequency" yaml:"frequency"`
}

// DateRange holds the ISO-8601 bounds of a datetime column.
type DateRange struct {
	Min string `json:"min" yaml:"min"`
	Max string `json:"max" yaml:"max"`
}

// BooleanStats are the summary statistics for boolean columns.
type BooleanStats struct {
	TrueCount      int     `json:"true_count" yaml:"true_count"`
	FalseCount     int     `json:"false_count" yaml:"false_count"`
	TruePercentage float64 `json:"true_percentage" yaml:"true_percentage"`
}

// MixedStats describe a column holding more than one kind of value.
type MixedStats struct {
	TypeDistribution map[string]int `json:"type_distribution" yaml:"type_distribution"`
	UniqueCount      *int           `json:"unique_count" yaml:"unique_count"`
}

// ObjectStats describe a column of container or otherwise opaque values.
type ObjectStats struct {
	UniqueCount *int   `json:"unique_count" yaml:"unique_count"`
	Type        string `json:"type" yaml:"type"`
}

// profileColumn classifies a column and computes its dtype-specific stats.
func profileColumn(col dataset.Column) *ColumnProfile {
	total := len(col.Cells)
	nullCount := col.NullCount()
	profile := &ColumnProfile{
		Count:          total,
		NullCount:      nullCount,
		NullPercentage: float64(nullCount) / float64(total) * 100,
	}

	nonNull := col.NonNull()
	if len(nonNull) == 0 {
		profile.Dtype = DtypeAllNull
		return profile
	}

	profile.Dtype = Classify(nonNull)
	switch profile.Dtype {
	case DtypeNumeric:
		profile.Numeric = profileNumeric(col)
	case DtypeString:
		profile.String = profileString(nonNull)
	case DtypeDatetime:
		profile.Datetime = profileDatetime(nonNull)
	case DtypeBoolean:
		profile.Boolean = profileBoolean(nonNull)
	case DtypeMixed:
		profile.Mixed = profileMixed(nonNull)
	default:
		profile.Object = profileObject(nonNull)
	}
	return profile
}

// profileNumeric works from the full column so outlier indices refer to
// original row positions. Cells that do not coerce to a number are skipped.
func profileNumeric(col dataset.Column) *NumericStats {
	indices := make([]int, 0, len(col.Cells))
	values := make([]float64, 0, len(col.Cells))
	for i, cell := range col.Cells {
		if cell == nil {
			continue
		}
		if f, ok := coerceNumeric(cell); ok {
			indices = append(indices, i)
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return &NumericStats{}
	}

	sorted := sortedCopy(values)
	stats := &NumericStats{
		Mean:   mean(values),
		Median: quantile(sorted, 0.5),
		StdDev: sampleStd(values),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
	}

	iqr := stats.Q3 - stats.Q1
	lower := stats.Q1 - iqrMultiplier*iqr
	upper := stats.Q3 + iqrMultiplier*iqr

	outliers := OutlierSummary{Values: []float64{}, Indices: []int{}}
	for i, v := range values {
		if v < lower || v > upper {
			outliers.Count++
			if len(outliers.Values) < outlierCap {
				outliers.Values = append(outliers.Values, v)
				outliers.Indices = append(outliers.Indices, indices[i])
			}
		}
	}
	stats.Outliers = outliers
	return stats
}

func profileString(nonNull []any) *StringStats {
	stats := &StringStats{MostCommonValues: []ValueCount{}}

	if distinct, ok := distinctValues(nonNull); ok {
		uc := len(distinct)
		pct := float64(uc) / float64(len(nonNull)) * 100
		stats.UniqueCount = &uc
		stats.UniquePercentage = &pct
		stats.MostCommonValues = mostCommon(nonNull, 10)
		stats.IsPotentialID = uc == len(nonNull)
	}

	// Length stats consider only cells that actually are strings, so a
	// string-classified column with stray non-string tails still reports
	// them.
	var lengths []int
	for _, v := range nonNull {
		if s, ok := v.(string); ok {
			lengths = append(lengths, len([]rune(s)))
		}
	}
	if len(lengths) > 0 {
		sum, min, max := 0, lengths[0], lengths[0]
		for _, l := range lengths {
			sum += l
			if l < min {
				min = l
			}
			if l > max {
				max = l
			}
		}
		avg := float64(sum) / float64(len(lengths))
		stats.AvgLength = &avg
		stats.MinLength = &min
		stats.MaxLength = &max
	}
	return stats
}

// mostCommon ranks values by count descending, ties broken by first
// encounter. Assumes hashable values.
func mostCommon(values []any, n int) []ValueCount {
	counts := make(map[any]int)
	order := make([]any, 0)
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	ranked := make([]ValueCount, 0, len(order))
	for _, v := range order {
		ranked = append(ranked, ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func profileDatetime(nonNull []any) *DatetimeStats {
	times := make([]time.Time, 0, len(nonNull))
	for _, v := range nonNull {
		if t, ok := parseDate(v); ok {
			times = append(times, t)
		}
	}
	if len(times) == 0 {
		return nil
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return &DatetimeStats{
		DateRange: DateRange{
			Min: times[0].Format(time.RFC3339),
			Max: times[len(times)-1].Format(time.RFC3339),
		},
		Frequency: detectDateFrequency(times),
	}
}

// detectDateFrequency labels the modal gap between consecutive sorted
// timestamps. Ties on the modal gap resolve to the smallest gap.
func detectDateFrequency(sorted []time.Time) string {
	if len(sorted) < 2 {
		return "insufficient_data"
	}
	gaps := make([]time.Duration, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Sub(sorted[i-1]))
	}
	modal, ok := modalDuration(gaps)
	if !ok {
		return "unknown"
	}

	days := int(modal.Hours() / 24)
	switch {
	case modal == 24*time.Hour:
		return "daily"
	case modal == 7*24*time.Hour:
		return "weekly"
	case days >= 28 && days <= 31:
		return "monthly"
	case days >= 365 && days <= 366:
		return "yearly"
	default:
		return fmt.Sprintf("custom (%s)", modal)
	}
}

func modalDuration(gaps []time.Duration) (time.Duration, bool) {
	if len(gaps) == 0 {
		return 0, false
	}
	counts := make(map[time.Duration]int)
	for _, g := range gaps {
		counts[g]++
	}
	var modal time.Duration
	best := 0
	for g, c := range counts {
		if c > best || (c == best && g < modal) {
			modal = g
			best = c
		}
	}
	return modal, true
}

func profileBoolean(nonNull []any) *BooleanStats {
	stats := &BooleanStats{}
	for _, v := range nonNull {
		if isTrueValue(v) {
			stats.TrueCount++
		} else {
			stats.FalseCount++
		}
	}
	stats.TruePercentage = float64(stats.TrueCount) / float64(len(nonNull)) * 100
	return stats
}

func isTrueValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "True" || t == "true"
	}
	return false
}

func profileMixed(nonNull []any) *MixedStats {
	dist := make(map[string]int)
	for _, v := range nonNull {
		dist[fmt.Sprintf("%T", v)]++
	}
	stats := &MixedStats{TypeDistribution: dist}
	if distinct, ok := distinctValues(nonNull); ok {
		uc := len(distinct)
		stats.UniqueCount = &uc
	}
	return stats
}

func profileObject(nonNull []any) *ObjectStats {
	stats := &ObjectStats{Type: "object"}
	if distinct, ok := distinctValues(nonNull); ok {
		uc := len(distinct)
		stats.UniqueCount = &uc
	}
	return stats
}
