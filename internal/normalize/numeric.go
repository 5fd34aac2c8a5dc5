package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// missingMarkers are source values meaning "no data". They normalize to
// the missing sentinel, never to zero.
var missingMarkers = map[string]struct{}{
	"":    {},
	"-":   {},
	"—":   {},
	"n/a": {},
	"na":  {},
}

// IsMissingMarker reports whether a raw value means "no data"
func IsMissingMarker(s string) bool {
	_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ParseDecimal parses a Brazilian-formatted number: dot as thousands
// separator, comma as decimal separator.
//
//	"1.234.567,00" -> 1234567.0
//	"0,95"         -> 0.95
func ParseDecimal(s string) (float64, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "R$")
	t = strings.TrimSpace(t)

	// Thousands separators first, then the decimal comma
	t = strings.ReplaceAll(t, ".", "")
	t = strings.Replace(t, ",", ".", 1)

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return v, nil
}

// ParsePercent parses a Brazilian-formatted percentage into a fraction.
//
//	"3,25%"  -> 0.0325
//	"12,86%" -> 0.1286
func ParsePercent(s string) (float64, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimSuffix(t, "%")

	v, err := ParseDecimal(t)
	if err != nil {
		return 0, fmt.Errorf("invalid percent %q: %w", s, err)
	}
	return v / 100.0, nil
}

// FormatPercent renders a fraction back in source convention: "0.0325" -> "3,25%"
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v*100, 'f', 2, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}
