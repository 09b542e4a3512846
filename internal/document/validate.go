package document

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/projecttitan/titan/internal/indicator"
)

// Validate runs the structural checks a publish should pass: the page has
// at least one indicator table, every table has at least one row, names
// are unique within a table, and every directional symbol is one of the
// allowed markers. Findings are returned as human-readable strings; an
// empty slice means the document is publishable.
func (d *Document) Validate() []string {
	var findings []string

	tables := d.indicatorTables()
	if len(tables) == 0 {
		return []string{"document: no indicator table found"}
	}

	for ti, table := range tables {
		rows := bodyRows(table)
		if len(rows) == 0 {
			findings = append(findings, fmt.Sprintf("table %d: no indicator rows", ti+1))
			continue
		}

		headers := headerCells(table)
		seen := make(map[string]bool)
		for ri, tr := range rows {
			tds := cells(tr)
			if len(tds) == 0 {
				findings = append(findings, fmt.Sprintf("table %d row %d: no cells", ti+1, ri+1))
				continue
			}

			name := text(tds[0])
			if name == "" {
				findings = append(findings, fmt.Sprintf("table %d row %d: empty indicator name", ti+1, ri+1))
			} else {
				key := indicator.Normalize(name)
				if seen[key] {
					findings = append(findings, fmt.Sprintf("table %d: duplicate indicator name %q", ti+1, name))
				}
				seen[key] = true
			}

			if len(tds) != len(headers) && len(headers) > 0 {
				findings = append(findings, fmt.Sprintf("table %d row %d (%s): %d cells for %d columns", ti+1, ri+1, name, len(tds), len(headers)))
			}

			for ci, td := range tds[1:] {
				if bad, sym := invalidMarker(text(td)); bad {
					findings = append(findings, fmt.Sprintf("table %d row %d (%s) column %d: unrecognized trend marker %q", ti+1, ri+1, name, ci+2, sym))
				}
			}
		}
	}
	return findings
}

// invalidMarker reports whether a cell leads with a directional symbol
// outside the allowed set. Plain values (numbers, $, %) carry no marker
// and are fine; anything symbol-like in front must be a known marker.
func invalidMarker(cell string) (bool, string) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false, ""
	}
	fields := strings.Fields(cell)
	first := fields[0]
	if indicator.Marker(first).Valid() {
		return false, ""
	}
	for _, r := range first {
		if r > unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true, first
		}
	}
	return false, ""
}
