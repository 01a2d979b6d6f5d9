package distinfo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/frederic-klein/pip-mark-installed/internal/pkgspec"
)

// Writer creates dist-info records under a target root.
type Writer struct {
	root   string
	out    io.Writer
	logger *log.Logger
}

// NewWriter creates a writer for root. Confirmation lines go to out.
func NewWriter(root string, out io.Writer, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Writer{
		root:   root,
		out:    out,
		logger: logger,
	}
}

// Existing lists root entries whose name starts with "<normalized>-".
// A missing root has no entries.
func (w *Writer) Existing(normalized string) ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", w.root, err)
	}

	prefix := normalized + "-"
	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			matches = append(matches, e.Name())
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// Mark writes a dist-info record for spec. Any version of a package already
// present under the root yields *AlreadyInstalledError and nothing is written.
func (w *Writer) Mark(spec pkgspec.Spec) error {
	normalized := spec.Normalized()

	existing, err := w.Existing(normalized)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		w.logger.Debug("found existing record", "package", spec.Name, "entries", existing)
		return &AlreadyInstalledError{Name: spec.Name, Existing: existing}
	}

	dirName := DirName(normalized, spec.Version)
	dirPath := filepath.Join(w.root, dirName)

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dirPath, err)
	}

	files := Files(spec.Name, spec.Version, dirName)
	for _, f := range recordOrder {
		path := filepath.Join(dirPath, f)
		if err := os.WriteFile(path, []byte(files[f]), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	w.logger.Debug("created record", "path", dirPath)
	fmt.Fprintf(w.out, "Marked %s %s as installed.\n", spec.Name, spec.Version)
	return nil
}
