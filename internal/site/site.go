// Package site orchestrates the monthly publish: patch the dashboard page
// and its chart pages in a site folder, or run the full baseline-zip to
// release-zip flow the way the hosted dashboard is updated.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/projecttitan/titan/internal/chart"
	"github.com/projecttitan/titan/internal/document"
	"github.com/projecttitan/titan/internal/indicator"
)

// Refresh applies one month's readings to the site folder: index.html gets
// the new column and recomputed Overall deltas, and every chart page under
// charts/ gets the month's point appended. Files are replaced atomically
// so a crash mid-refresh never leaves a half-written page.
func Refresh(dir, month string, readings indicator.Readings, logger *log.Logger) error {
	indexPath := filepath.Join(dir, "index.html")
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	doc, err := document.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if err := doc.ApplyMonth(month, readings, document.DefaultBaseline); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	if err := writeAtomic(indexPath, buf.Bytes()); err != nil {
		return err
	}
	logger.Printf("updated %s for %s (%d readings)", indexPath, month, len(readings))

	return refreshCharts(dir, month, readings, logger)
}

func refreshCharts(dir, month string, readings indicator.Readings, logger *log.Logger) error {
	pages, err := filepath.Glob(filepath.Join(dir, "charts", "*.html"))
	if err != nil {
		return fmt.Errorf("list charts: %w", err)
	}

	for _, page := range pages {
		src, err := os.ReadFile(page)
		if err != nil {
			return fmt.Errorf("read chart %s: %w", page, err)
		}

		// Unknown filenames still get a null point so every chart's x
		// axis stays aligned with the tables.
		var value *float64
		if name, ok := chart.IndicatorForFile(page); ok {
			if v, ok := readings.Value(name); ok {
				value = &v
			}
		}

		patched, err := chart.PatchSeries(string(src), month, value)
		if err != nil {
			return fmt.Errorf("patch chart %s: %w", page, err)
		}
		if err := writeAtomic(page, []byte(patched)); err != nil {
			return err
		}
		logger.Printf("updated chart %s", page)
	}
	return nil
}

// RefreshArchive runs the release flow: extract the baseline zip into a
// scratch directory, refresh it (plus the summary list when items are
// given), and pack it as the release zip.
func RefreshArchive(baselineZip, outZip, month string, readings indicator.Readings, summary []document.SummaryItem, logger *log.Logger) error {
	work, err := os.MkdirTemp("", "titan-refresh-*")
	if err != nil {
		return fmt.Errorf("create workdir: %w", err)
	}
	defer os.RemoveAll(work)

	if err := Unpack(baselineZip, work); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(work, "index.html")); err != nil {
		return fmt.Errorf("baseline zip has no index.html: %w", err)
	}
	if err := Refresh(work, month, readings, logger); err != nil {
		return err
	}
	if len(summary) > 0 {
		if err := UpdateSummary(work, summary, logger); err != nil {
			return err
		}
	}
	if err := Pack(work, outZip); err != nil {
		return err
	}
	logger.Printf("built %s", outZip)
	return nil
}

// UpdateSummary replaces the "Who's better vs. worse" list on the index
// page. Returns an error when the page has no summary heading, so a typo'd
// page doesn't silently skip the update.
func UpdateSummary(dir string, items []document.SummaryItem, logger *log.Logger) error {
	indexPath := filepath.Join(dir, "index.html")
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	doc, err := document.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if !doc.SetSummary(items) {
		return fmt.Errorf("%s has no summary heading", indexPath)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	if err := writeAtomic(indexPath, buf.Bytes()); err != nil {
		return err
	}
	logger.Printf("updated summary on %s (%d items)", indexPath, len(items))
	return nil
}

// LoadSummary decodes a summary file: a JSON array of icon/title/body items.
func LoadSummary(path string) ([]document.SummaryItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	var items []document.SummaryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse summary %s: %w", path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("summary %s: no items", path)
	}
	return items, nil
}

// writeAtomic writes data to a temp file in the target's directory and
// renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
