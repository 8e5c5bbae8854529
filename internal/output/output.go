// Package output serializes assembled graphs and validation reports to
// disk: one JSON file per graph, stable formatting so repeated runs of the
// same input produce identical files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FrameworkFile returns the output path for a framework graph, named after
// the CTID of the course it was generated from.
func FrameworkFile(dir, courseCTID string) string {
	return filepath.Join(dir, fmt.Sprintf("framework_%s.json", courseCTID))
}

// CourseFile returns the output path for a standalone course graph.
func CourseFile(dir, courseCTID string) string {
	return filepath.Join(dir, fmt.Sprintf("course_%s.json", courseCTID))
}

// ProgramFile returns the output path for a learning-program wrapper.
func ProgramFile(dir, programCTID string) string {
	return filepath.Join(dir, fmt.Sprintf("learningprogram_%s.json", programCTID))
}

// WriteJSON creates the target directory if needed and writes v as
// two-space indented JSON.
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
