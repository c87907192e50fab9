package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// OverrideRule recognizes single-line virtual declarations of one function
// and splices the override marker in front of the terminating semicolon.
//
// A matching line starts with optional indentation and the virtual keyword,
// names the function before its parameter list, may end with a const
// qualifier and ends with ';'. Declarations spread over several physical
// lines are not recognized.
type OverrideRule struct {
	Function string

	pattern  *regexp.Regexp
	before   int
	name     int
	constant int
	after    int
}

// NewOverrideRule compiles the rule for function.
func NewOverrideRule(function string) (*OverrideRule, error) {
	if strings.TrimSpace(function) == "" {
		return nil, fmt.Errorf("empty function name")
	}

	// The prefix is lazy so the first occurrence of the name wins; submatches
	// rejects it when it sits inside an open parenthesis.
	expr := `^(?P<before>\s*` + m.VirtualKeyword + `\b[^;]*?` +
		nameBoundary(function) + `(?P<name>` + regexp.QuoteMeta(function) + `)\s*\([^;]*?\))` +
		`(?P<const>\s+const)?` +
		`(?P<after>\s*;)\s*$`

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile rule for %q: %w", function, err)
	}

	return &OverrideRule{
		Function: function,
		pattern:  pattern,
		before:   pattern.SubexpIndex("before"),
		name:     pattern.SubexpIndex("name"),
		constant: pattern.SubexpIndex("const"),
		after:    pattern.SubexpIndex("after"),
	}, nil
}

// nameBoundary returns `\b` for names starting with an ASCII word character.
// A destructor name (~Foo) has no word boundary in front of it.
func nameBoundary(function string) string {
	if function == "" {
		return ""
	}

	if c := function[0]; c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
		return `\b`
	}

	return ""
}

// Match reports whether line is a declaration this rule recognizes.
func (r *OverrideRule) Match(line string) bool {
	return r.submatches(line) != nil
}

// submatches returns the capture groups of a recognized declaration, or nil.
// The name must be at parenthesis depth zero: parenthesized return types such
// as decltype(auto) are fine, a parameter that happens to carry the name is not.
func (r *OverrideRule) submatches(line string) []string {
	loc := r.pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil
	}

	if parenDepth(line[:loc[2*r.name]]) != 0 {
		return nil
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = line[loc[2*i]:loc[2*i+1]]
		}
	}

	return groups
}

func parenDepth(text string) int {
	depth := 0

	for _, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
	}

	return depth
}

// Rewrite returns line with the override marker inserted. matched is false
// when the line is not a declaration of the rule's function. A matching line
// that already mentions the marker anywhere comes back unchanged.
func (r *OverrideRule) Rewrite(line string) (rewritten string, matched bool) {
	groups := r.submatches(line)
	if groups == nil {
		return line, false
	}

	if strings.Contains(line, m.OverrideMarker) {
		return line, true
	}

	return groups[r.before] + groups[r.constant] + " " + m.OverrideMarker + groups[r.after], true
}

// buildOverrideRules compiles one rule per function, keeping the given order.
func buildOverrideRules(functions []string) ([]*OverrideRule, error) {
	rules := make([]*OverrideRule, 0, len(functions))

	for _, fn := range functions {
		rule, err := NewOverrideRule(fn)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// insertOverrides applies rules to lines. For each line only the first
// matching rule is considered. It returns the new lines and one edit per
// inserted marker.
func insertOverrides(file m.Path, lines []string, rules []*OverrideRule) ([]string, []m.Edit) {
	out := make([]string, len(lines))

	var edits []m.Edit

	for i, line := range lines {
		out[i] = line

		for _, rule := range rules {
			rewritten, matched := rule.Rewrite(line)
			if !matched {
				continue
			}

			if rewritten != line {
				out[i] = rewritten
				edits = append(edits, m.Edit{
					Kind:     m.EditAddOverride,
					File:     file,
					Line:     i + 1,
					Function: rule.Function,
					Before:   line,
					After:    rewritten,
				})
			}

			break
		}
	}

	return out, edits
}
