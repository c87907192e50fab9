package domain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// ParseOverrideLine parses one "<path>\t<function>" record. Empty lines and
// lines without a tab are not records.
func ParseOverrideLine(line string) (m.OverrideRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return m.OverrideRecord{}, false
	}

	path, function, ok := strings.Cut(line, "\t")
	if !ok {
		return m.OverrideRecord{}, false
	}

	path = strings.TrimSpace(path)
	function = strings.TrimSpace(function)

	if path == "" || function == "" {
		return m.OverrideRecord{}, false
	}

	return m.OverrideRecord{File: m.Path(filepath.Clean(path)), Function: function}, true
}

// LoadOverrides reads an override list and groups its records by file.
func LoadOverrides(ctx context.Context, r io.Reader) (*m.OverrideSet, error) {
	set := m.NewOverrideSet()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lineNo++

		record, ok := ParseOverrideLine(scanner.Text())
		if !ok {
			slog.Debug("Skipping override list line", "line", lineNo)
			continue
		}

		set.Add(record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read override list: %w", err)
	}

	return set, nil
}
