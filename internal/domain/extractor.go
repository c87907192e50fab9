package domain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// warningPattern matches clang's -Winconsistent-missing-override diagnostic:
//
//	a/b/Widget.h:42:10: warning: 'doThing' overrides a member function but is not marked 'override' [...]
//
// The path is the shortest prefix followed by ":<line>:<col>:", so paths that
// contain colons are not split early.
var warningPattern = regexp.MustCompile(
	`^(?P<path>.+?):(?P<line>\d+):(?P<col>\d+): warning: '(?P<func>[^']+)' overrides .*not marked 'override'`,
)

// ParseWarning extracts the override record from one diagnostic line.
func ParseWarning(line string) (m.OverrideRecord, bool) {
	groups := warningPattern.FindStringSubmatch(line)
	if groups == nil {
		return m.OverrideRecord{}, false
	}

	return m.OverrideRecord{
		File:     m.Path(groups[warningPattern.SubexpIndex("path")]),
		Function: groups[warningPattern.SubexpIndex("func")],
	}, true
}

// ExtractOverrides scans a diagnostic log and writes one "<path>\t<function>" line per
// matching warning to w. Other lines are dropped.
func ExtractOverrides(ctx context.Context, r io.Reader, w io.Writer) ([]m.OverrideRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	out := bufio.NewWriter(w)

	var records []m.OverrideRecord

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		record, ok := ParseWarning(scanner.Text())
		if !ok {
			continue
		}

		if _, err := fmt.Fprintf(out, "%s\t%s\n", record.File, record.Function); err != nil {
			return records, fmt.Errorf("failed to write record: %w", err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to read diagnostics: %w", err)
	}

	if err := out.Flush(); err != nil {
		return records, fmt.Errorf("failed to write records: %w", err)
	}

	return records, nil
}
