// Package semantic infers the semantic type of a dataset column from a
// sample of its values. The importer uses the inference to auto-map source
// columns onto analyzer inputs (timestamp columns to datetime inputs, id-like
// columns to identifier inputs) before falling back to name hints.
package semantic

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/magpielabs/magpie/internal/ports"
)

// Threshold is the fraction of sampled values that must convert for a
// classification to hold.
const Threshold = 0.8

// SampleSize caps how many values are examined per column.
const SampleSize = 100

// datetimeLayouts is the parse battery, most specific first. Timezone
// abbreviations and offsets are stripped before parsing (mixed-timezone
// columns are treated as one zone for analysis purposes).
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02.01.2006 15:04:05",
	"02.01.2006",
}

var timeLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM"}

var (
	tzAbbrevRE = regexp.MustCompile(` [A-Z]{3,4}$`)
	tzOffsetRE = regexp.MustCompile(`[+-]\d{2}:?\d{2}$`)
	urlRE      = regexp.MustCompile(`^https?://\S+$|^www\.\S+$`)
)

// Infer classifies a column from its sampled values. Empty values are
// ignored; an all-empty column is free text.
func Infer(values []string) ports.DataType {
	sample := make([]string, 0, SampleSize)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		sample = append(sample, v)
		if len(sample) == SampleSize {
			break
		}
	}
	if len(sample) == 0 {
		return ports.TypeText
	}

	switch {
	case passes(sample, isDatetime):
		return ports.TypeDatetime
	case passes(sample, isClockTime):
		return ports.TypeTime
	case passes(sample, isInteger):
		return ports.TypeInteger
	case passes(sample, isFloat):
		return ports.TypeFloat
	case passes(sample, isURL):
		return ports.TypeURL
	case passes(sample, isIdentifier):
		return ports.TypeIdentifier
	default:
		return ports.TypeText
	}
}

func passes(sample []string, pred func(string) bool) bool {
	hits := 0
	for _, v := range sample {
		if pred(v) {
			hits++
		}
	}
	return float64(hits)/float64(len(sample)) > Threshold
}

func isDatetime(v string) bool {
	v = tzAbbrevRE.ReplaceAllString(v, "")
	v = tzOffsetRE.ReplaceAllString(v, "")
	v = strings.TrimSpace(v)
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	// Unix epoch seconds or milliseconds also read as datetimes.
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n > 1_000_000_000 && n < 100_000_000_000_000
	}
	return false
}

func isClockTime(v string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func isInteger(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isFloat(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isURL(v string) bool {
	return urlRE.MatchString(v)
}

// isIdentifier matches compact, whitespace-free values like user handles
// and post IDs.
func isIdentifier(v string) bool {
	return len(v) <= 64 && !strings.ContainsAny(v, " \t\n")
}

// ParseDatetime converts a value classified as datetime. Returns the zero
// time when no layout matches.
func ParseDatetime(v string) time.Time {
	v = strings.TrimSpace(v)
	stripped := tzAbbrevRE.ReplaceAllString(v, "")
	stripped = tzOffsetRE.ReplaceAllString(stripped, "")
	stripped = strings.TrimSpace(stripped)

	// RFC3339 carries its own offset; try the raw value first.
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, stripped); err == nil {
			return t
		}
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n > 100_000_000_000 { // milliseconds
			return time.UnixMilli(n).UTC()
		}
		if n > 1_000_000_000 {
			return time.Unix(n, 0).UTC()
		}
	}
	return time.Time{}
}
