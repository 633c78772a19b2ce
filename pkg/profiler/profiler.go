// Package profiler implements the smart data profiler: per-column semantic
// type inference, dtype-specific statistics, pattern detection, correlation
// and missing-value analysis, and a composite data quality score.
//
// The profiler is a pure function of its inputs apart from the optional
// learning collaborator; it performs no I/O. Sampling with a fixed seed
// bounds compute on very large tables while keeping results deterministic.
package profiler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/onix-analytics/profiler-engine/pkg/apperrors"
	"github.com/onix-analytics/profiler-engine/pkg/dataset"
	"github.com/onix-analytics/profiler-engine/pkg/learning"
)

// DatasetKey is the field of the Execute data map that carries the table.
const DatasetKey = "dataset"

// Config controls a profiling run.
type Config struct {
	// EnableLearning consults and updates the learning collaborator.
	EnableLearning bool
	// SampleSize is the row threshold above which the table is downsampled.
	// Must be non-negative.
	SampleSize int
	// PatternThreshold is the minimum match ratio for pattern flags. Must
	// be in [0, 1].
	PatternThreshold float64
}

// DefaultConfig returns the standard profiling configuration.
func DefaultConfig() Config {
	return Config{
		EnableLearning:   true,
		SampleSize:       100000,
		PatternThreshold: 0.8,
	}
}

// validate returns validation error strings for out-of-bounds settings.
func (c Config) validate() []string {
	var errs []string
	if c.SampleSize < 0 {
		errs = append(errs, "invalid sample_size: must be non-negative")
	}
	if c.PatternThreshold < 0 || c.PatternThreshold > 1 {
		errs = append(errs, "invalid pattern_threshold: must be between 0 and 1")
	}
	return errs
}

// Result is the outcome of a profiling run. On failure Data is nil and
// Errors is non-empty; no partial report is ever returned.
type Result struct {
	Success bool     `json:"success" yaml:"success"`
	Data    *Report  `json:"data" yaml:"data"`
	Errors  []string `json:"errors" yaml:"errors"`
}

// Report is the assembled profiling output for one table.
type Report struct {
	Profile         map[string]*ColumnProfile     `json:"profile" yaml:"profile"`
	Patterns        map[string]PatternFlags       `json:"patterns" yaml:"patterns"`
	Correlations    map[string]map[string]float64 `json:"correlations" yaml:"correlations"`
	MissingPatterns map[string]MissingPattern     `json:"missing_patterns" yaml:"missing_patterns"`
	QualityScore    float64                       `json:"quality_score" yaml:"quality_score"`
	Metadata        Metadata                      `json:"metadata" yaml:"metadata"`
}

// Metadata describes the run itself.
type Metadata struct {
	RunID        string    `json:"run_id" yaml:"run_id"`
	Sampled      bool      `json:"sampled" yaml:"sampled"`
	SampleSize   int       `json:"sample_size" yaml:"sample_size"`
	OriginalSize int       `json:"original_size" yaml:"original_size"`
	ProfiledAt   time.Time `json:"profiled_at" yaml:"profiled_at"`
}

// Learning confidences reported back per detected pattern, in priority
// order: id > email > phone > categorical.
const (
	idConfidence          = 0.9
	emailConfidence       = 0.95
	phoneConfidence       = 0.9
	categoricalConfidence = 0.85
)

// SmartDataProfiler profiles tables. The learning history is optional; when
// nil (or learning is disabled) runs are pure functions of their input.
type SmartDataProfiler struct {
	history learning.History
	logger  *zap.Logger
}

// NewSmartDataProfiler creates a profiler. history may be nil.
func NewSmartDataProfiler(history learning.History, logger *zap.Logger) *SmartDataProfiler {
	return &SmartDataProfiler{
		history: history,
		logger:  logger.Named("smart-data-profiler"),
	}
}

// Execute runs the full profiling pipeline: validate, sample if needed,
// profile each column, correlate, analyze missing values, score, assemble.
//
// data must carry the table under DatasetKey as a *dataset.Table. Input and
// configuration are validated eagerly; any failure short-circuits with the
// error list and no partial result. An unexpected panic during profiling is
// converted into a failed Result the same way.
//
// ctx exists so the call composes with the async conventions of callers; the
// profiler itself never blocks and does not observe cancellation.
func (p *SmartDataProfiler) Execute(ctx context.Context, data map[string]any, cfg Config) (result Result) {
	_ = ctx

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("profiling failed", zap.Any("panic", r))
			result = Result{Success: false, Errors: []string{fmt.Sprint(r)}}
		}
	}()

	if errs := validateInput(data); len(errs) > 0 {
		return Result{Success: false, Errors: errs}
	}
	if errs := cfg.validate(); len(errs) > 0 {
		return Result{Success: false, Errors: errs}
	}

	table := data[DatasetKey].(*dataset.Table)
	originalSize := table.Rows()
	sampled := false
	if table.Rows() > cfg.SampleSize {
		table = sampleTable(table, cfg.SampleSize, sampleSeed)
		sampled = true
		p.logger.Info("sampled large table",
			zap.Int("original_rows", originalSize),
			zap.Int("sample_rows", table.Rows()))
	}

	profiles := make(map[string]*ColumnProfile, table.Cols())
	patterns := make(map[string]PatternFlags, table.Cols())
	for _, col := range table.Columns() {
		profile := profileColumn(col)
		flags := detectPatterns(col, profile.Dtype, cfg.PatternThreshold)
		profiles[col.Name] = profile
		patterns[col.Name] = flags

		if cfg.EnableLearning && p.history != nil {
			if suggested, ok := p.history.SuggestType(col.Name); ok {
				profile.SuggestedType = suggested
			}
			p.recordDetectedPattern(col.Name, flags)
		}
	}

	correlations := correlate(table)
	missingPatterns := analyzeMissing(table)
	score := qualityScore(profiles, correlations, missingPatterns)

	report := &Report{
		Profile:         profiles,
		Patterns:        patterns,
		Correlations:    correlations,
		MissingPatterns: missingPatterns,
		QualityScore:    score,
		Metadata: Metadata{
			RunID:        uuid.NewString(),
			Sampled:      sampled,
			SampleSize:   table.Rows(),
			OriginalSize: originalSize,
			ProfiledAt:   time.Now(),
		},
	}

	p.logger.Info("profiling complete",
		zap.String("run_id", report.Metadata.RunID),
		zap.Int("columns", table.Cols()),
		zap.Float64("quality_score", score))

	return Result{Success: true, Data: report, Errors: []string{}}
}

// recordDetectedPattern reports the single strongest pattern for a column
// back to the learning history.
func (p *SmartDataProfiler) recordDetectedPattern(column string, flags PatternFlags) {
	switch {
	case isSet(flags.IsID):
		p.history.RecordPattern(learning.Fact{Column: column, Type: "id", Confidence: idConfidence})
	case isSet(flags.IsEmail):
		p.history.RecordPattern(learning.Fact{Column: column, Type: "email", Confidence: emailConfidence})
	case isSet(flags.IsPhone):
		p.history.RecordPattern(learning.Fact{Column: column, Type: "phone", Confidence: phoneConfidence})
	case isSet(flags.IsCategorical):
		p.history.RecordPattern(learning.Fact{Column: column, Type: "categorical", Confidence: categoricalConfidence})
	}
}

func isSet(b *bool) bool { return b != nil && *b }

// validateInput checks the shape of the data map before any computation.
func validateInput(data map[string]any) []string {
	raw, ok := data[DatasetKey]
	if !ok {
		return []string{apperrors.ErrMissingDataset.Error()}
	}
	table, ok := raw.(*dataset.Table)
	if !ok || table == nil {
		return []string{apperrors.ErrNotATable.Error()}
	}
	if table.Empty() {
		return []string{apperrors.ErrEmptyDataset.Error()}
	}
	return nil
}
