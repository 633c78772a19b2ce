package profiler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

const defaultThreshold = 0.8

func detect(c dataset.Column, threshold float64) PatternFlags {
	nonNull := c.NonNull()
	dtype := DtypeAllNull
	if len(nonNull) > 0 {
		dtype = Classify(nonNull)
	}
	return detectPatterns(c, dtype, threshold)
}

func TestDetectEmail(t *testing.T) {
	emails := col("email", "a@example.com", "b@test.org", "c.d@corp.io", "user+tag@mail.co")
	flags := detect(emails, defaultThreshold)
	require.NotNil(t, flags.IsEmail)
	assert.True(t, *flags.IsEmail)

	mostlyNot := col("notes", "a@example.com", "hello", "world", "again")
	flags = detect(mostlyNot, defaultThreshold)
	require.NotNil(t, flags.IsEmail)
	assert.False(t, *flags.IsEmail)
}

func TestDetectPhone(t *testing.T) {
	phones := col("phone", "+1 (555) 123-4567", "555 987 6543", "+44 20 7946 0958")
	flags := detect(phones, defaultThreshold)
	require.NotNil(t, flags.IsPhone)
	assert.True(t, *flags.IsPhone)
}

func TestDetectDateStrings(t *testing.T) {
	tests := []struct {
		name     string
		cells    []any
		expected bool
	}{
		{"iso dates", []any{"2024-01-01", "2024-02-15"}, true},
		{"us dates", []any{"01/15/2024", "12/31/2023"}, true},
		{"eu dashed dates", []any{"15-01-2024", "31-12-2023"}, true},
		{"slashed iso", []any{"2024/01/15", "2023/12/31"}, true},
		{"free text", []any{"hello", "world"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flags := detect(dataset.Column{Name: "d", Cells: tc.cells}, defaultThreshold)
			require.NotNil(t, flags.IsDate)
			assert.Equal(t, tc.expected, *flags.IsDate)
		})
	}
}

func TestDetectDateFromDatetimeDtype(t *testing.T) {
	// A column already classified datetime is a date regardless of regex
	// matches; mixed string/time content exercises that path.
	c := col("ts", "2024-01-01 10:30:00", day(2))
	flags := detectPatterns(c, Classify(c.NonNull()), defaultThreshold)
	// Non-string head values: string-only flags are skipped entirely.
	assert.Nil(t, flags.IsDate)

	stringsOnly := col("ts", "2024-01-01", "2024-01-02")
	flags = detectPatterns(stringsOnly, DtypeDatetime, defaultThreshold)
	require.NotNil(t, flags.IsDate)
	assert.True(t, *flags.IsDate)
}

func TestDetectID(t *testing.T) {
	unique := col("id", "u1", "u2", "u3", "u4", "u5")
	flags := detect(unique, defaultThreshold)
	require.NotNil(t, flags.IsID)
	assert.True(t, *flags.IsID)

	withDup := col("id", "u1", "u2", "u3", "u4", "u1")
	flags = detect(withDup, defaultThreshold)
	require.NotNil(t, flags.IsID)
	assert.False(t, *flags.IsID)
}

func TestDetectIDWithNulls(t *testing.T) {
	// A missing entry means distinct count can never reach the row count.
	c := col("id", "u1", "u2", nil, "u4")
	flags := detect(c, defaultThreshold)
	require.NotNil(t, flags.IsID)
	assert.False(t, *flags.IsID)
}

func TestDetectCategorical(t *testing.T) {
	tests := []struct {
		name     string
		distinct int
		rows     int
		expected bool
	}{
		{"3 of 100", 3, 100, true},    // <=10 rule
		{"40 of 1000", 40, 1000, true}, // ratio 0.04 < 0.05 and 40 < 50
		{"60 of 1000", 60, 1000, false},
		{"12 of 100", 12, 100, false}, // ratio 0.12, neither rule
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cells := make([]any, 0, tc.rows)
			for i := 0; i < tc.rows; i++ {
				cells = append(cells, fmt.Sprintf("v%d", i%tc.distinct))
			}
			flags := detect(dataset.Column{Name: "c", Cells: cells}, defaultThreshold)
			require.NotNil(t, flags.IsCategorical)
			assert.Equal(t, tc.expected, *flags.IsCategorical)
		})
	}
}

func TestDetectContinuous(t *testing.T) {
	cells := make([]any, 0, 100)
	for i := 0; i < 100; i++ {
		cells = append(cells, float64(i)*1.5)
	}
	flags := detect(dataset.Column{Name: "c", Cells: cells}, defaultThreshold)
	require.NotNil(t, flags.IsContinuous)
	assert.True(t, *flags.IsContinuous)

	// Low distinct ratio reads as not continuous.
	repeats := make([]any, 0, 100)
	for i := 0; i < 100; i++ {
		repeats = append(repeats, i%5)
	}
	flags = detect(dataset.Column{Name: "c", Cells: repeats}, defaultThreshold)
	require.NotNil(t, flags.IsContinuous)
	assert.False(t, *flags.IsContinuous)

	// Non-numeric content is never continuous.
	flags = detect(col("c", "a", "b", "c"), defaultThreshold)
	require.NotNil(t, flags.IsContinuous)
	assert.False(t, *flags.IsContinuous)
}

func TestDetectUnhashableColumn(t *testing.T) {
	c := col("c", []any{1}, []any{2}, "x")
	flags := detect(c, defaultThreshold)
	require.NotNil(t, flags.IsCategorical)
	assert.False(t, *flags.IsCategorical)
	require.NotNil(t, flags.IsContinuous)
	assert.False(t, *flags.IsContinuous)
	// String-only flags never ran: the head is not all strings.
	assert.Nil(t, flags.IsEmail)
	assert.Nil(t, flags.IsID)
}

func TestDetectAllNullColumn(t *testing.T) {
	flags := detect(col("c", nil, nil), defaultThreshold)
	assert.Nil(t, flags.IsEmail)
	assert.Nil(t, flags.IsPhone)
	assert.Nil(t, flags.IsDate)
	assert.Nil(t, flags.IsID)
	assert.Nil(t, flags.IsCategorical)
	assert.Nil(t, flags.IsContinuous)
}

func TestThresholdBoundary(t *testing.T) {
	// 4 of 5 emails: ratio 0.8 meets a 0.8 threshold, misses 0.9.
	c := col("e", "a@x.com", "b@x.com", "c@x.com", "d@x.com", "nope")
	flags := detect(c, 0.8)
	require.NotNil(t, flags.IsEmail)
	assert.True(t, *flags.IsEmail)

	flags = detect(c, 0.9)
	require.NotNil(t, flags.IsEmail)
	assert.False(t, *flags.IsEmail)
}
