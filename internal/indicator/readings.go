package indicator

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Readings holds one month's values, keyed by canonical indicator name.
// The operator writes the file by hand each month; nothing ingests data
// automatically.
type Readings map[string]float64

// LoadReadings decodes a readings file and re-keys entries to canonical
// names. Unknown indicators and non-finite values are rejected so a typo
// fails the refresh instead of silently skipping a row.
func LoadReadings(path string) (Readings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read readings: %w", err)
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse readings %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("readings %s: no indicators", path)
	}

	out := make(Readings, len(raw))
	for label, v := range raw {
		name, ok := Canonical(label)
		if !ok {
			return nil, fmt.Errorf("readings %s: unknown indicator %q", path, label)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("readings %s: %q has non-finite value", path, label)
		}
		out[name] = v
	}
	return out, nil
}

// Value looks up a reading by any label that resolves to a canonical name.
func (r Readings) Value(label string) (float64, bool) {
	name, ok := Canonical(label)
	if !ok {
		return 0, false
	}
	v, ok := r[name]
	return v, ok
}
