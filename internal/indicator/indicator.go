// Package indicator holds the domain rules for the Titan Index: the set of
// tracked indicators, label normalization, cell value parsing/formatting,
// and the direction rules that decide whether a month-over-month move is an
// improvement.
package indicator

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker is the directional annotation shown next to a value.
type Marker string

const (
	MarkerImproved Marker = "🟢"
	MarkerWorsened Marker = "🟥"
	MarkerFlat     Marker = "➖"
	MarkerMissing  Marker = "—"
)

// Valid reports whether m is one of the allowed markers.
func (m Marker) Valid() bool {
	switch m {
	case MarkerImproved, MarkerWorsened, MarkerFlat, MarkerMissing:
		return true
	}
	return false
}

// Names lists the canonical indicators, in display order.
var Names = []string{
	"30-Year Mortgage Rate (%)",
	"Avg Home Price ($)",
	"DJIA",
	"S&P 500",
	"NASDAQ",
	"Unemployment Rate (%)",
	"Consumer Confidence",
	"Presidential Approval (%)",
	"Avg Gas Price ($/gal)",
	"Big Mac ($)",
	"Milk ($/gal)",
	"Eggs ($/dozen)",
}

// Table labels have drifted over the months; aliases map the variants seen
// in published pages back to canonical names. Keys are normalized.
var aliases = map[string]string{
	"average home price ($)":           "Avg Home Price ($)",
	"avg gas price ($/gal)":            "Avg Gas Price ($/gal)",
	"gas price (avg, $/gal)":           "Avg Gas Price ($/gal)",
	"big mac price ($)":                "Big Mac ($)",
	"milk (avg, $/gal)":                "Milk ($/gal)",
	"eggs (avg, $/dozen)":              "Eggs ($/dozen)",
	"presidential approval (%)":        "Presidential Approval (%)",
	"consumer confidence index":        "Consumer Confidence",
	"30-year fixed mortgage rate (%)":  "30-Year Mortgage Rate (%)",
}

// Indicators where a falling value is an improvement.
var goodWhenDown = map[string]bool{
	"30-year mortgage rate (%)":  true,
	"avg home price ($)":         true,
	"home price-to-income ratio": true,
	"big mac ($)":                true,
	"avg gas price ($/gal)":      true,
	"milk ($/gal)":               true,
	"eggs ($/dozen)":             true,
	"unemployment rate (%)":      true,
}

var spaceRe = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace and case-folds a label for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(spaceRe.ReplaceAllString(s, " ")))
}

// Canonical resolves a table label to its canonical indicator name,
// tolerating whitespace, case, and known alias variants.
func Canonical(label string) (string, bool) {
	n := Normalize(label)
	for _, name := range Names {
		if Normalize(name) == n {
			return name, true
		}
	}
	if name, ok := aliases[n]; ok {
		return name, true
	}
	return "", false
}

// GoodWhenDown reports whether a decrease in the named indicator counts as
// an improvement. Unknown names fall back to keyword heuristics so rows
// added by hand still trend sensibly.
func GoodWhenDown(name string) bool {
	n := Normalize(name)
	if goodWhenDown[n] {
		return true
	}
	for _, k := range []string{"djia", "nasdaq", "s&p", "confidence", "approval", "income"} {
		if strings.Contains(n, k) {
			return false
		}
	}
	for _, k := range []string{"price", "rate", "mortgage", "ratio"} {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

const flatTolerance = 1e-9

// TrendMarker classifies a month-over-month delta.
func TrendMarker(delta float64, goodWhenDown bool) Marker {
	if delta < flatTolerance && delta > -flatTolerance {
		return MarkerFlat
	}
	improved := delta > 0
	if goodWhenDown {
		improved = delta < 0
	}
	if improved {
		return MarkerImproved
	}
	return MarkerWorsened
}

var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ParseValue extracts the numeric reading from a table cell. Markers,
// currency/percent symbols, and thousands separators are stripped; an
// em-dash means the value is missing.
func ParseValue(cell string) (float64, bool) {
	if strings.Contains(cell, string(MarkerMissing)) {
		return 0, false
	}
	t := cell
	for _, m := range []Marker{MarkerImproved, MarkerWorsened, MarkerFlat} {
		t = strings.ReplaceAll(t, string(m), "")
	}
	t = strings.NewReplacer("$", "", "%", "", ",", "").Replace(t)
	m := numberRe.FindString(t)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatValue renders a reading the way the published tables do: two
// decimal places with trailing zeros (and a bare point) trimmed.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
