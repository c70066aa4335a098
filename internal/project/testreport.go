package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gantryio/gantry/internal/engine"
)

// LoadTestReport reads a test report JSON file: the failing tests of the
// most recent run, each attributed to a project-relative source file.
// A missing path returns (nil, nil) — no run has happened, every
// component's test status stays not_run.
func LoadTestReport(path string) (*engine.TestRun, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading test report: %w", err)
	}

	var run engine.TestRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing test report %s: %w", path, err)
	}
	return &run, nil
}
