// Package document parses and patches the dashboard's index page. The page
// is hand-maintained HTML; refresh edits the existing tree in place rather
// than regenerating it, so whatever styling and prose the operator wrote
// survives untouched.
package document

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/projecttitan/titan/internal/indicator"
)

// Document wraps the parsed HTML tree of the dashboard page.
type Document struct {
	root *html.Node
}

// Row is one indicator row as published: the label, the newest month's
// display value, and its trend marker (empty when the cell carries none).
type Row struct {
	Name   string
	Value  string
	Marker indicator.Marker
}

// Parse reads the dashboard page into a Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// --- tree helpers -----------------------------------------------------

func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
		return true
	})
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteString(" ")
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// setText replaces a node's children with a single text node.
func setText(n *html.Node, s string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

func newCell(tag, content string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	if content != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	}
	return n
}

// --- indicator tables -------------------------------------------------

// indicatorTables returns every table whose first header cell is
// "Indicator". Other tables on the page are left alone.
func (d *Document) indicatorTables() []*html.Node {
	var out []*html.Node
	for _, table := range findAll(d.root, "table") {
		headers := headerCells(table)
		if len(headers) > 0 && indicator.Normalize(text(headers[0])) == "indicator" {
			out = append(out, table)
		}
	}
	return out
}

func headerCells(table *html.Node) []*html.Node {
	rows := findAll(table, "tr")
	if len(rows) == 0 {
		return nil
	}
	return findAll(rows[0], "th")
}

// bodyRows returns the data rows of a table (every tr past the header row).
func bodyRows(table *html.Node) []*html.Node {
	rows := findAll(table, "tr")
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cells(tr *html.Node) []*html.Node {
	return findAll(tr, "td")
}

func headerIndex(headers []*html.Node, label string) int {
	want := indicator.Normalize(label)
	for i, h := range headers {
		if indicator.Normalize(text(h)) == want {
			return i
		}
	}
	return -1
}

func overallIndex(headers []*html.Node) int {
	for i, h := range headers {
		if strings.HasPrefix(indicator.Normalize(text(h)), "overall") {
			return i
		}
	}
	return -1
}

// splitCell separates a cell's leading trend marker from its display value.
func splitCell(cell string) (indicator.Marker, string) {
	cell = strings.TrimSpace(cell)
	if cell == string(indicator.MarkerMissing) {
		return indicator.MarkerMissing, cell
	}
	fields := strings.Fields(cell)
	if len(fields) > 1 {
		if m := indicator.Marker(fields[0]); m.Valid() {
			return m, strings.Join(fields[1:], " ")
		}
	}
	return "", cell
}
