package chart

import (
	"strings"
	"testing"
)

const chartPage = `<html><body><canvas id="c"></canvas><script>
const labels = ["Feb 1", "Mar 1", "Apr 1"];
const actual = [6.89, 6.65, 6.81];
drawChart(labels, actual);
</script></body></html>`

func TestPatchSeries_AppendsPoint(t *testing.T) {
	v := 6.5
	out, err := PatchSeries(chartPage, "May 1", &v)
	if err != nil {
		t.Fatalf("PatchSeries() error = %v", err)
	}

	if !strings.Contains(out, `const labels = ["Feb 1", "Mar 1", "Apr 1", "May 1"];`) {
		t.Errorf("labels not extended:\n%s", out)
	}
	if !strings.Contains(out, `const actual = [6.89, 6.65, 6.81, 6.5];`) {
		t.Errorf("actual not extended:\n%s", out)
	}
	// Surrounding markup must survive the splice.
	if !strings.Contains(out, `drawChart(labels, actual);`) {
		t.Errorf("script body damaged:\n%s", out)
	}
}

func TestPatchSeries_ExistingLabelOverwritesPoint(t *testing.T) {
	v := 7.0
	once, err := PatchSeries(chartPage, "May 1", &v)
	if err != nil {
		t.Fatalf("first patch: %v", err)
	}
	v2 := 7.25
	twice, err := PatchSeries(once, "May 1", &v2)
	if err != nil {
		t.Fatalf("second patch: %v", err)
	}

	if strings.Count(twice, `"May 1"`) != 1 {
		t.Errorf("label duplicated:\n%s", twice)
	}
	if !strings.Contains(twice, `const actual = [6.89, 6.65, 6.81, 7.25];`) {
		t.Errorf("point not overwritten:\n%s", twice)
	}
}

func TestPatchSeries_NilValueRecordsNull(t *testing.T) {
	out, err := PatchSeries(chartPage, "May 1", nil)
	if err != nil {
		t.Fatalf("PatchSeries() error = %v", err)
	}
	if !strings.Contains(out, `const actual = [6.89, 6.65, 6.81, null];`) {
		t.Errorf("expected null point:\n%s", out)
	}
}

func TestPatchSeries_PadsShortSeries(t *testing.T) {
	short := `<script>
const labels = ["Feb 1", "Mar 1", "Apr 1"];
const actual = [6.89];
</script>`
	v := 6.5
	out, err := PatchSeries(short, "May 1", &v)
	if err != nil {
		t.Fatalf("PatchSeries() error = %v", err)
	}
	if !strings.Contains(out, `const actual = [6.89, null, null, 6.5];`) {
		t.Errorf("series not padded:\n%s", out)
	}
}

func TestPatchSeries_PreservesNullsAndIntegers(t *testing.T) {
	page := `<script>
const labels = ["Feb 1", "Mar 1"];
const actual = [422000, null];
</script>`
	v := 422400.0
	out, err := PatchSeries(page, "Apr 1", &v)
	if err != nil {
		t.Fatalf("PatchSeries() error = %v", err)
	}
	if !strings.Contains(out, `const actual = [422000, null, 422400];`) {
		t.Errorf("integers or nulls mangled:\n%s", out)
	}
}

func TestPatchSeries_MissingSeries(t *testing.T) {
	if _, err := PatchSeries("<html>no script here</html>", "May 1", nil); err == nil {
		t.Fatal("expected error for page without series")
	}
}

func TestIndicatorForFile(t *testing.T) {
	tests := []struct {
		file string
		want string
		ok   bool
	}{
		{"charts/djia.html", "DJIA", true},
		{"nasdaq.html", "NASDAQ", true},
		{"s&p-500.html", "S&P 500", true},
		{"30-year-mortgage-rate-history.html", "30-Year Mortgage Rate (%)", true},
		{"unemployment-rate.html", "Unemployment Rate (%)", true},
		{"consumer-confidence.html", "Consumer Confidence", true},
		{"presidential-approval.html", "Presidential Approval (%)", true},
		{"avg-home-price.html", "Avg Home Price ($)", true},
		{"average-home-price-trend.html", "Avg Home Price ($)", true},
		{"avg-gas-price.html", "Avg Gas Price ($/gal)", true},
		{"big-mac.html", "Big Mac ($)", true},
		{"milk.html", "Milk ($/gal)", true},
		{"eggs.html", "Eggs ($/dozen)", true},
		{"readme.html", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := IndicatorForFile(tt.file)
			if ok != tt.ok || got != tt.want {
				t.Errorf("IndicatorForFile(%q) = %q, %v; want %q, %v", tt.file, got, ok, tt.want, tt.ok)
			}
		})
	}
}
