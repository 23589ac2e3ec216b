package core

import (
	"regexp"
	"strings"
)

var (
	nonLetterRun  = regexp.MustCompile(`[^A-Za-z]+`)
	underscoreRun = regexp.MustCompile(`_{2,}`)
)

// NormalizeColumn maps a raw CSV header to its canonical key.
//
// Every run of non-ASCII-letter characters becomes a single underscore,
// repeated underscores collapse, a trailing underscore is dropped and the
// result is lower-cased. Leading underscores are kept. Digits and non-ASCII
// letters are treated as separators, so "CO₂" normalizes to "co".
//
//	NormalizeColumn("IMO Number")                   // "imo_number"
//	NormalizeColumn("Total fuel consumption [m tonnes]") // "total_fuel_consumption_m_tonnes"
func NormalizeColumn(header string) string {
	s := nonLetterRun.ReplaceAllString(header, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.TrimSuffix(s, "_")
	return strings.ToLower(s)
}

// NormalizeHeader normalizes every cell of a header row.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = NormalizeColumn(h)
	}
	return out
}
