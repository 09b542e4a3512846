package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projecttitan/titan/internal/config"
)

const testIndex = `<!DOCTYPE html>
<html><body>
<table>
<tr><th>Indicator</th><th>Feb 1</th><th>Aug 1</th><th>Overall</th></tr>
<tr><td>DJIA</td><td>44544.66</td><td>🟢 44173.12</td><td>🟥 -371.54</td></tr>
<tr><td>Eggs ($/dozen)</td><td>4.95</td><td>🟢 3.59</td><td>🟢 -1.36</td></tr>
</table>
</body></html>`

func newTestSite(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(testIndex), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.SiteDir = dir
	return &cfg
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	Healthz(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
}

func TestIndicatorsHandler(t *testing.T) {
	cfg := newTestSite(t)
	handler := IndicatorsHandler(cfg.SiteDir)

	req := httptest.NewRequest("GET", "/api/indicators", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Indicators []struct {
			Name   string `json:"name"`
			Value  string `json:"value"`
			Marker string `json:"trend_marker"`
		} `json:"indicators"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Indicators) != 2 {
		t.Fatalf("expected 2 indicators, got %d", len(resp.Indicators))
	}
	if resp.Indicators[0].Name != "DJIA" || resp.Indicators[0].Value != "44173.12" || resp.Indicators[0].Marker != "🟢" {
		t.Errorf("row 0 = %+v", resp.Indicators[0])
	}
}

func TestIndicatorsHandler_MissingIndex(t *testing.T) {
	handler := IndicatorsHandler(t.TempDir())

	req := httptest.NewRequest("GET", "/api/indicators", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

// TestRouter_Integration verifies the preview server end to end: static
// serving, index fallback, probes, and headers through the full middleware
// chain.
func TestRouter_Integration(t *testing.T) {
	cfg := newTestSite(t)
	ts := httptest.NewServer(NewRouter(cfg))
	defer ts.Close()

	client := ts.Client()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantInBody string
	}{
		{"root serves index", "/", http.StatusOK, "Indicator"},
		{"asset served as-is", "/style.css", http.StatusOK, "body{}"},
		{"unknown path falls back to index", "/no/such/page", http.StatusOK, "Indicator"},
		{"health probe", "/healthz", http.StatusOK, "ok"},
		{"indicators endpoint", "/api/indicators", http.StatusOK, "DJIA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if !strings.Contains(string(body), tt.wantInBody) {
				t.Errorf("body %q does not contain %q", body, tt.wantInBody)
			}

			if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("missing security header, got %q", got)
			}
		})
	}
}
