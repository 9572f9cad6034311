// Package csvout writes flattened tables as UTF-8, comma-delimited CSV
// files with a header row.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// EnsureDir creates the output directory if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// Write writes a header row followed by the data rows to path.
func Write(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	log.Info().Str("path", path).Int("rows", len(rows)).Msg("Wrote CSV file")
	return nil
}
