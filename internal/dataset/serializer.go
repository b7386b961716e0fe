// Package dataset renders filtered entity trees into the external JSON
// schema and reports what each run kept, dropped, and failed on.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/typeminer/typeminer/internal/model"
)

// WriteJSON renders repositories into the dataset schema: a JSON array of
// repository objects, 4-space indented. Absent optional fields render as
// null, never as empty strings.
func WriteJSON(w io.Writer, repositories []model.Repository) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(repositories); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// SaveFile writes the dataset to a file, creating parent directories.
func SaveFile(path string, repositories []model.Repository) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, repositories)
}
