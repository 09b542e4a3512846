// Package chart patches the per-indicator chart pages. Each page embeds its
// series as two JS array literals (`const labels = [...]` and
// `const actual = [...]`); refresh appends the new month's point to both.
package chart

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	labelsRe = regexp.MustCompile(`const\s+labels\s*=\s*(\[[^\]]*\])\s*;`)
	actualRe = regexp.MustCompile(`const\s+actual\s*=\s*(\[[^\]]*\])\s*;`)
)

// element is one entry of a series literal: a string label, a float64
// value, or nil for a null point.
type element any

func parseArray(src string) []element {
	inner := strings.TrimSpace(src)
	inner = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(inner, "["), "]"))
	if inner == "" {
		return nil
	}

	var out []element
	for _, part := range splitTopLevel(inner) {
		s := strings.TrimSpace(part)
		switch {
		case strings.EqualFold(s, "null"):
			out = append(out, nil)
		case len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0]:
			out = append(out, s[1:len(s)-1])
		default:
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				out = append(out, f)
			} else {
				out = append(out, s)
			}
		}
	}
	return out
}

// splitTopLevel splits on commas that are not inside a quoted string.
func splitTopLevel(s string) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func serializeArray(elems []element) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		switch v := e.(type) {
		case nil:
			b.WriteString("null")
		case string:
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v, `"`, `\"`))
			b.WriteByte('"')
		case float64:
			if v == float64(int64(v)) {
				b.WriteString(strconv.FormatInt(int64(v), 10))
			} else {
				b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			}
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// PatchSeries appends month to the labels array (if absent) and sets the
// matching point in actual, padding with nulls so the two arrays stay
// aligned. A nil value records a null point, keeping the chart's x axis in
// step with the tables even when the indicator has no reading this month.
func PatchSeries(src, month string, value *float64) (string, error) {
	labelsLoc := labelsRe.FindStringSubmatchIndex(src)
	actualLoc := actualRe.FindStringSubmatchIndex(src)
	if labelsLoc == nil || actualLoc == nil {
		return "", fmt.Errorf("chart has no labels/actual series")
	}

	labels := parseArray(src[labelsLoc[2]:labelsLoc[3]])
	actual := parseArray(src[actualLoc[2]:actualLoc[3]])

	found := false
	for _, l := range labels {
		if s, ok := l.(string); ok && s == month {
			found = true
			break
		}
	}
	if !found {
		labels = append(labels, month)
	}

	var point element
	if value != nil {
		point = *value
	}
	for len(actual) < len(labels)-1 {
		actual = append(actual, nil)
	}
	if len(actual) == len(labels)-1 {
		actual = append(actual, point)
	} else {
		actual[len(actual)-1] = point
	}

	// Splice the rewritten literals back in. Labels always precede actual
	// in the generated pages, but splice by position to be safe.
	first, second := labelsLoc, actualLoc
	firstStr := "const labels = " + serializeArray(labels) + ";"
	secondStr := "const actual = " + serializeArray(actual) + ";"
	if actualLoc[0] < labelsLoc[0] {
		first, second = actualLoc, labelsLoc
		firstStr, secondStr = secondStr, firstStr
	}

	var b strings.Builder
	b.WriteString(src[:first[0]])
	b.WriteString(firstStr)
	b.WriteString(src[first[1]:second[0]])
	b.WriteString(secondStr)
	b.WriteString(src[second[1]:])
	return b.String(), nil
}

// IndicatorForFile maps a chart page's filename to its canonical indicator.
// Filenames predate the alias cleanup, so matching is by pattern rather
// than by exact name.
func IndicatorForFile(name string) (string, bool) {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(name), ".html"))
	switch {
	case strings.HasPrefix(base, "30-year-mortgage-rate-"):
		return "30-Year Mortgage Rate (%)", true
	case base == "djia":
		return "DJIA", true
	case base == "nasdaq":
		return "NASDAQ", true
	case base == "s&p-500" || base == "s&p 500" || base == "s&p_500":
		return "S&P 500", true
	case strings.Contains(base, "unemployment"):
		return "Unemployment Rate (%)", true
	case strings.Contains(base, "consumer-confidence"):
		return "Consumer Confidence", true
	case strings.Contains(base, "presidential-approval"):
		return "Presidential Approval (%)", true
	case strings.Contains(base, "avg-home-price"), strings.Contains(base, "average-home-price"):
		return "Avg Home Price ($)", true
	case strings.Contains(base, "avg-gas-price"):
		return "Avg Gas Price ($/gal)", true
	case strings.Contains(base, "big-mac"):
		return "Big Mac ($)", true
	case strings.Contains(base, "milk"):
		return "Milk ($/gal)", true
	case strings.Contains(base, "eggs"):
		return "Eggs ($/dozen)", true
	}
	return "", false
}
