package tabular

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Inferred column kinds.
const (
	kindEmpty   = "empty"
	kindInteger = "integer"
	kindFloat   = "float"
	kindBoolean = "boolean"
	kindDate    = "datetime"
	kindString  = "string"
	kindObject  = "object"
	kindArray   = "array"
	kindMixed   = "mixed"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// inferString classifies a raw text cell. Empty cells are kindEmpty.
func inferString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return kindEmpty
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return kindInteger
	}
	// ParseFloat also accepts words like NaN and Inf, which are text here.
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return kindFloat
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return kindBoolean
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return kindDate
		}
	}
	return kindString
}

// mergeKind combines the kind seen so far with a new observation.
func mergeKind(prev, next string) string {
	switch {
	case prev == next, next == kindEmpty:
		return prev
	case prev == kindEmpty:
		return next
	case (prev == kindInteger && next == kindFloat) || (prev == kindFloat && next == kindInteger):
		return kindFloat
	case prev == kindString || next == kindString:
		return kindString
	default:
		return kindMixed
	}
}
