package document

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/projecttitan/titan/internal/indicator"
)

// DefaultBaseline is the column the Overall delta is measured against.
const DefaultBaseline = "Feb 1"

const missing = string(indicator.MarkerMissing)

// ApplyMonth writes one month's readings into every indicator table:
//
//   - the month column is inserted before Overall when absent, with every
//     row back-filled to an em-dash;
//   - each row with a reading gets "<marker> <value>", the marker computed
//     against the column immediately to the left;
//   - the Overall column is recomputed as the signed delta between the
//     month column and the baseline column.
//
// Rows whose labels don't resolve to a reading keep their em-dash: a
// partial readings file updates what it names and nothing else.
func (d *Document) ApplyMonth(month string, readings indicator.Readings, baseline string) error {
	if strings.TrimSpace(month) == "" {
		return fmt.Errorf("empty month label")
	}
	if baseline == "" {
		baseline = DefaultBaseline
	}

	tables := d.indicatorTables()
	if len(tables) == 0 {
		return fmt.Errorf("no indicator table in document")
	}

	for _, table := range tables {
		d.ensureMonthColumn(table, month)

		headers := headerCells(table)
		monthIdx := headerIndex(headers, month)
		baseIdx := headerIndex(headers, baseline)
		if baseIdx < 0 {
			baseIdx = 1
		}
		overallIdx := overallIndex(headers)
		prevIdx := monthIdx - 1 // column left of the new month

		for _, tr := range bodyRows(table) {
			tds := cells(tr)
			if len(tds) == 0 {
				continue
			}
			name := text(tds[0])

			if monthIdx >= 1 && monthIdx < len(tds) {
				if val, ok := readings.Value(name); ok {
					marker := indicator.MarkerFlat
					if prevIdx >= 1 && prevIdx < len(tds) {
						if prev, ok := indicator.ParseValue(text(tds[prevIdx])); ok {
							marker = indicator.TrendMarker(val-prev, indicator.GoodWhenDown(name))
						}
					}
					setText(tds[monthIdx], string(marker)+" "+indicator.FormatValue(val))
				}
			}

			if overallIdx >= 1 && overallIdx < len(tds) {
				d.writeOverall(tds, name, monthIdx, baseIdx, overallIdx)
			}
		}
	}
	return nil
}

// ensureMonthColumn inserts a header cell for month before the Overall
// column (or at the end) and back-fills an em-dash cell in every row.
func (d *Document) ensureMonthColumn(table *html.Node, month string) {
	headers := headerCells(table)
	if headerIndex(headers, month) >= 0 {
		return
	}

	overallIdx := overallIndex(headers)
	th := newCell("th", month)
	if overallIdx >= 0 {
		headers[overallIdx].Parent.InsertBefore(th, headers[overallIdx])
	} else if len(headers) > 0 {
		headers[len(headers)-1].Parent.AppendChild(th)
	} else {
		return
	}

	for _, tr := range bodyRows(table) {
		tds := cells(tr)
		if len(tds) == 0 {
			continue
		}
		td := newCell("td", missing)
		if overallIdx >= 0 && overallIdx < len(tds) {
			tds[overallIdx].Parent.InsertBefore(td, tds[overallIdx])
		} else {
			tds[len(tds)-1].Parent.AppendChild(td)
		}
	}
}

func (d *Document) writeOverall(tds []*html.Node, name string, monthIdx, baseIdx, overallIdx int) {
	var latest, base float64
	latestOK, baseOK := false, false
	if monthIdx >= 1 && monthIdx < len(tds) {
		latest, latestOK = indicator.ParseValue(text(tds[monthIdx]))
	}
	if baseIdx >= 1 && baseIdx < len(tds) {
		base, baseOK = indicator.ParseValue(text(tds[baseIdx]))
	}

	if !latestOK || !baseOK {
		setText(tds[overallIdx], missing)
		return
	}

	diff := latest - base
	marker := indicator.TrendMarker(diff, indicator.GoodWhenDown(name))
	sign := ""
	if diff > 0 {
		sign = "+"
	}
	setText(tds[overallIdx], string(marker)+" "+sign+indicator.FormatValue(diff))
}

// Rows extracts the published indicator rows: for each data row, the value
// under the newest month column (the one left of Overall, or the last
// column) together with its marker.
func (d *Document) Rows() []Row {
	var out []Row
	for _, table := range d.indicatorTables() {
		headers := headerCells(table)
		valueIdx := len(headers) - 1
		if i := overallIndex(headers); i >= 1 {
			valueIdx = i - 1
		}
		for _, tr := range bodyRows(table) {
			tds := cells(tr)
			if len(tds) == 0 {
				continue
			}
			row := Row{Name: text(tds[0])}
			if valueIdx >= 1 && valueIdx < len(tds) {
				row.Marker, row.Value = splitCell(text(tds[valueIdx]))
			}
			out = append(out, row)
		}
	}
	return out
}

// SummaryItem is one entry of the "Who's better vs. worse" list.
type SummaryItem struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SetSummary replaces the list under the "Who's better vs. worse" heading.
// Returns false when the page has no such heading.
func (d *Document) SetSummary(items []SummaryItem) bool {
	heading := d.summaryHeading()
	if heading == nil {
		return false
	}

	ul := &html.Node{Type: html.ElementNode, Data: "ul"}
	ul.Attr = []html.Attribute{{Key: "style", Val: "margin:8px 0 0 18px;line-height:1.5;"}}
	for _, item := range items {
		li := &html.Node{Type: html.ElementNode, Data: "li"}
		li.AppendChild(&html.Node{Type: html.TextNode, Data: item.Icon + " "})
		strong := newCell("strong", item.Title+":")
		li.AppendChild(strong)
		li.AppendChild(&html.Node{Type: html.TextNode, Data: " " + item.Body})
		ul.AppendChild(li)
	}

	if old := nextElement(heading, "ul"); old != nil {
		old.Parent.InsertBefore(ul, old)
		old.Parent.RemoveChild(old)
	} else {
		heading.Parent.InsertBefore(ul, heading.NextSibling)
	}
	return true
}

func (d *Document) summaryHeading() *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3" || n.Data == "h4") {
			t := strings.ReplaceAll(strings.ToLower(text(n)), "’", "'")
			if strings.Contains(t, "who's better vs. worse") {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// nextElement finds the first element with the given tag following n in
// document order (siblings first, then the rest of the tree).
func nextElement(n *html.Node, tag string) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode && s.Data == tag {
			return s
		}
		if s.Type == html.ElementNode {
			if found := findAll(s, tag); len(found) > 0 {
				return found[0]
			}
		}
	}
	return nil
}
