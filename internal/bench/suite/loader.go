package suite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite YAML: %w", err)
	}
	if len(s.Classes) == 0 {
		return nil, fmt.Errorf("suite has no classes")
	}
	if len(s.Samples) == 0 {
		return nil, fmt.Errorf("suite has no samples")
	}

	for i, sample := range s.Samples {
		if sample.ID == "" {
			return nil, fmt.Errorf("sample at index %d has no id", i)
		}
		for j, d := range sample.Predictions {
			if err := checkBox(d.Box); err != nil {
				return nil, fmt.Errorf("sample %q prediction %d: %w", sample.ID, j, err)
			}
			if err := checkLabel(d.Label, s.Classes); err != nil {
				return nil, fmt.Errorf("sample %q prediction %d: %w", sample.ID, j, err)
			}
		}
		for j, a := range sample.GroundTruth {
			if err := checkBox(a.Box); err != nil {
				return nil, fmt.Errorf("sample %q ground truth %d: %w", sample.ID, j, err)
			}
			if err := checkLabel(a.Label, s.Classes); err != nil {
				return nil, fmt.Errorf("sample %q ground truth %d: %w", sample.ID, j, err)
			}
		}
	}

	return &s, nil
}

func checkBox(vals []float64) error {
	if len(vals) != 7 {
		return fmt.Errorf("box has %d values, want 7 (cx, cy, cz, dx, dy, dz, yaw)", len(vals))
	}
	return nil
}

func checkLabel(label int, classes []string) error {
	if label < 0 || label >= len(classes) {
		return fmt.Errorf("label %d outside class table of %d entries", label, len(classes))
	}
	return nil
}
