package sitepkgs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultPython is the interpreter asked for its site-packages directories
// when none is configured.
const DefaultPython = "python3"

const querySitePackages = "import json, site; print(json.dumps(site.getsitepackages()))"

// Runner runs an interpreter and returns its stdout.
type Runner func(ctx context.Context, python string, args ...string) ([]byte, error)

// Resolver determines the directory dist-info records are written to.
type Resolver struct {
	python string
	run    Runner
	logger *log.Logger
}

// NewResolver creates a resolver that queries python. An empty python
// means DefaultPython.
func NewResolver(python string, logger *log.Logger) *Resolver {
	if python == "" {
		python = DefaultPython
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		python: python,
		run:    execRunner,
		logger: logger,
	}
}

// Python returns the interpreter the resolver queries.
func (r *Resolver) Python() string {
	return r.python
}

// Resolve returns explicit unchanged when set. Otherwise it returns the
// first entry of the interpreter's site.getsitepackages().
func (r *Resolver) Resolve(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		r.logger.Debug("using explicit site-packages", "path", explicit)
		return explicit, nil
	}

	dirs, err := r.SitePackages(ctx)
	if err != nil {
		return "", err
	}
	if len(dirs) == 0 {
		return "", fmt.Errorf("%s reported no site-packages directories", r.python)
	}
	return dirs[0], nil
}

// SitePackages lists every site-packages directory the interpreter reports.
func (r *Resolver) SitePackages(ctx context.Context) ([]string, error) {
	r.logger.Debug("querying interpreter", "python", r.python)

	out, err := r.run(ctx, r.python, "-c", querySitePackages)
	if err != nil {
		return nil, fmt.Errorf("querying site-packages from %s: %w", r.python, err)
	}

	var dirs []string
	if err := json.Unmarshal(bytes.TrimSpace(out), &dirs); err != nil {
		return nil, fmt.Errorf("parsing site-packages from %s: %w", r.python, err)
	}

	r.logger.Debug("interpreter site-packages", "dirs", dirs)
	return dirs, nil
}

func execRunner(ctx context.Context, python string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}
