// Package learning defines the profiler's learning collaborator: a store of
// column-type decisions that outlives individual profiling runs. The
// profiler core only reads suggestions from it and pushes discrete facts to
// it; the store owns its own concurrency discipline.
package learning

// Fact is one learned observation about a column.
type Fact struct {
	Column     string  `json:"column" yaml:"column"`
	Type       string  `json:"type" yaml:"type"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// History remembers past column-type decisions across profiling runs.
type History interface {
	// SuggestType returns the remembered type for a column name, if any.
	SuggestType(column string) (string, bool)

	// RecordPattern stores a detected pattern fact for future suggestions.
	RecordPattern(fact Fact)
}
