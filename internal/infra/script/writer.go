package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"rokuwake/internal/domain"
)

// Writer renders trigger scripts and writes them, replacing any previous file.
type Writer struct {
	fs     afero.Fs
	flavor Flavor
}

func NewWriter(fs afero.Fs, flavor Flavor) *Writer {
	return &Writer{fs: fs, flavor: flavor}
}

func (w *Writer) WriteScript(path string, dev domain.Device, seq domain.Sequence) error {
	if path == "" {
		return fmt.Errorf("script path is empty")
	}

	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating script dir: %w", err)
	}

	perm := os.FileMode(0o644)
	if w.flavor == FlavorShell {
		perm = 0o755
	}

	if err := afero.WriteFile(w.fs, path, Render(w.flavor, dev, seq), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	// WriteFile keeps the mode of an existing file.
	if err := w.fs.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}

	return nil
}
