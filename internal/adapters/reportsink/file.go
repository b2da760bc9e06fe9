// Package reportsink writes rendered reports to files in an output directory.
package reportsink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeFileAtomic writes the output of write to a temp file in dir and renames it
// to name, so readers never see a half-written report.
func writeFileAtomic(dir, name string, write func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", name, err)
	}
	return nil
}
