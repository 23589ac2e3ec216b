package core

// cleaners.go provides the cell-level cleaning functions applied to raw
// EU MRV export values.
//
// Published exports are messy: spreadsheet error strings in numeric columns,
// "Not Applicable" placeholders, day-first dates and efficiency cells such as
// "EIV (45.57 gCO₂/t·nm)". Every cleaner is total. Malformed input degrades to
// "no value" (the bool result is false) or to a documented default; none of
// them returns an error for a single bad cell.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayout is the day-first layout used by EU MRV exports.
// Day and month may be unpadded, so "6/7/2021" is the 6th of July.
const DefaultDateLayout = "2/1/2006"

// isoDateLayout is the output layout for cleaned dates.
const isoDateLayout = "2006-01-02"

var (
	// numericSentinels are spreadsheet error strings found in numeric columns.
	numericSentinels = map[string]bool{
		"division by zero!": true,
		"#div/0!":           true,
	}

	// nullSentinels are placeholders treated as absent values.
	nullSentinels = map[string]bool{
		"":               true,
		"n/a":            true,
		"not applicable": true,
	}

	// efficiencyNumber matches the first decimal number in an efficiency cell.
	efficiencyNumber = regexp.MustCompile(`\d*\.?\d+`)
)

// ParseNumeric parses a decimal string and rounds it to 2 places.
// Spreadsheet error sentinels, NaN, Inf and unparseable strings yield false.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || numericSentinels[strings.ToLower(s)] {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return roundTo2(f), true
}

// ParseDate reformats a DD/MM/YYYY date as YYYY-MM-DD.
// Sentinels such as "Not issued" and malformed dates yield false.
func ParseDate(s string) (string, bool) {
	return ParseDateLayout(s, DefaultDateLayout)
}

// ParseDateLayout reformats a date in the given Go layout as YYYY-MM-DD.
func ParseDateLayout(s, layout string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return "", false
	}
	return t.Format(isoDateLayout), true
}

// NormalizeNull reports whether s carries a value.
// "", "N/A" and "Not Applicable" (after trimming, any case) are absent.
// Any other string is returned unchanged.
func NormalizeNull(s string) (string, bool) {
	if nullSentinels[strings.ToLower(strings.TrimSpace(s))] {
		return "", false
	}
	return s, true
}

// UpperCase upper-cases free text such as vessel and port names.
func UpperCase(s string) string {
	return strings.ToUpper(s)
}

// NormalizeMonitoringFlag defaults an empty monitoring method cell to "No".
// Non-empty cells are returned trimmed and otherwise verbatim; the validator
// decides whether the result is a permitted flag.
func NormalizeMonitoringFlag(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return string(FlagNo)
	}
	return s
}

// ExtractEfficiencyValue returns the first decimal number in a technical
// efficiency cell, rounded to 2 places. "Not Applicable" and cells without
// a number yield false.
func ExtractEfficiencyValue(s string) (float64, bool) {
	if _, ok := NormalizeNull(s); !ok {
		return 0, false
	}

	m := efficiencyNumber.FindString(s)
	if m == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return roundTo2(f), true
}

// ParseInteger parses a base-10 integer such as a reporting period.
func ParseInteger(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// roundTo2 rounds the exact binary value of f to 2 decimal places, so
// 2.675 (stored as 2.67499...) rounds down.
func roundTo2(f float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	return r
}
