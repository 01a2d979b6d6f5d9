package pkgspec

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseFile reads specs from a requirements-style file, one per line.
// Blank lines and '#' comments are skipped.
func ParseFile(path, defaultVersion string) ([]Spec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening requirements file: %w", err)
	}
	defer file.Close()

	var specs []Spec
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}

		specs = append(specs, ParseWithDefault(line, defaultVersion))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading requirements file: %w", err)
	}

	return specs, nil
}

// stripComment drops a '#' comment that starts the line or follows
// whitespace. A '#' inside a token is kept.
func stripComment(line string) string {
	for i, r := range line {
		if r != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i]
		}
	}
	return line
}
