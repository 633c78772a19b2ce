package profiler

import (
	"strconv"
	"strings"
	"time"

	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// Dtype is the semantic classification of a column's content, distinct from
// the raw storage type of its cells.
type Dtype string

const (
	DtypeNumeric  Dtype = "numeric"
	DtypeString   Dtype = "string"
	DtypeDatetime Dtype = "datetime"
	DtypeBoolean  Dtype = "boolean"
	DtypeMixed    Dtype = "mixed"
	DtypeObject   Dtype = "object"
	DtypeAllNull  Dtype = "all_null"
)

// classifySampleSize caps how many leading values the all-strings checks
// inspect on wide columns.
const classifySampleSize = 100

// numericStringThreshold is the minimum parse ratio for an all-string column
// to be classified numeric rather than mixed.
const numericStringThreshold = 0.9

// datetimeStringThreshold is the minimum parse ratio for a column to be
// classified datetime from string content.
const datetimeStringThreshold = 0.7

// booleanSpellings are the values a two-valued column may draw from to be
// classified boolean.
var booleanSpellings = map[any]struct{}{
	true: {}, false: {}, "True": {}, "False": {}, "true": {}, "false": {},
}

// Classify infers the semantic dtype of a column's non-missing values.
//
// The checks run as an ordered cascade with short-circuit; the precedence
// (datetime > boolean > numeric > numeric-string > mixed-type cascade >
// datetime-string > string > object) is load-bearing for columns that mix
// typed and string-encoded values, which business data does constantly.
func Classify(nonNull []any) Dtype {
	if len(nonNull) == 0 {
		return DtypeString
	}

	if allOf(nonNull, isTime) {
		return DtypeDatetime
	}

	if allOf(nonNull, isBool) {
		return DtypeBoolean
	}
	if distinct, ok := distinctValues(nonNull); ok && len(distinct) == 2 {
		if subsetOf(distinct, booleanSpellings) {
			return DtypeBoolean
		}
	}

	if allOf(nonNull, dataset.IsNumeric) {
		return DtypeNumeric
	}

	if allOf(head(nonNull, classifySampleSize), isString) {
		// The head being strings does not make the tail strings; coerce
		// leniently over the full column.
		parsed := 0
		for _, v := range nonNull {
			if _, ok := coerceNumeric(v); ok {
				parsed++
			}
		}
		ratio := float64(parsed) / float64(len(nonNull))
		switch {
		case ratio > numericStringThreshold:
			return DtypeNumeric
		case parsed > 0:
			return DtypeMixed
		default:
			return DtypeString
		}
	}

	if kinds := cellKinds(nonNull); len(kinds) > 1 {
		// A column mixing strings and native timestamps may still be a
		// single date column with string-encoded entries. Every value must
		// parse for that reading to win.
		if subsetKinds(kinds, kindString, kindTime) {
			if countDateParseable(nonNull) == len(nonNull) {
				return DtypeDatetime
			}
			return DtypeMixed
		}
		for _, v := range nonNull {
			if dataset.IsContainer(v) {
				return DtypeObject
			}
		}
		return DtypeMixed
	}

	if ratio := float64(countDateParseable(nonNull)) / float64(len(nonNull)); ratio > datetimeStringThreshold {
		return DtypeDatetime
	}

	if allOf(head(nonNull, classifySampleSize), isString) {
		return DtypeString
	}

	return DtypeObject
}

// dateLayouts are the string timestamp forms the classifier accepts, tried
// in order. The two-digit-first layouts cover both MM/DD and DD-MM data.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"02-01-2006",
}

// parseDate parses a cell as a timestamp. Native time.Time passes through;
// strings are tried against dateLayouts; everything else fails.
func parseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func countDateParseable(values []any) int {
	n := 0
	for _, v := range values {
		if _, ok := parseDate(v); ok {
			n++
		}
	}
	return n
}

// coerceNumeric converts a cell to float64 the way a lenient numeric cast
// would: numbers pass through, numeric strings parse, bools map to 0/1.
func coerceNumeric(v any) (float64, bool) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	if f, ok := dataset.AsFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

type cellKind int

const (
	kindString cellKind = iota
	kindTime
	kindNumeric
	kindBool
	kindContainer
	kindOther
)

func kindOf(v any) cellKind {
	switch v.(type) {
	case string:
		return kindString
	case time.Time:
		return kindTime
	case bool:
		return kindBool
	}
	if dataset.IsNumeric(v) {
		return kindNumeric
	}
	if dataset.IsContainer(v) {
		return kindContainer
	}
	return kindOther
}

func cellKinds(values []any) map[cellKind]struct{} {
	kinds := make(map[cellKind]struct{})
	for _, v := range values {
		kinds[kindOf(v)] = struct{}{}
	}
	return kinds
}

func subsetKinds(kinds map[cellKind]struct{}, allowed ...cellKind) bool {
	for k := range kinds {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// distinctValues returns the set of distinct values, or ok=false when the
// column contains unhashable cells and cardinality cannot be computed.
func distinctValues(values []any) (map[any]struct{}, bool) {
	set := make(map[any]struct{})
	for _, v := range values {
		if !dataset.IsHashable(v) {
			return nil, false
		}
		set[v] = struct{}{}
	}
	return set, true
}

func subsetOf(set map[any]struct{}, allowed map[any]struct{}) bool {
	for v := range set {
		if _, ok := allowed[v]; !ok {
			return false
		}
	}
	return true
}

func head(values []any, n int) []any {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func allOf(values []any, pred func(any) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isString(v any) bool { _, ok := v.(string); return ok }
func isBool(v any) bool   { _, ok := v.(bool); return ok }
func isTime(v any) bool   { _, ok := v.(time.Time); return ok }
