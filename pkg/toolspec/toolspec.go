// Package toolspec validates the tool specifiers that skills, agents, and
// commands declare in their frontmatter. A specifier is either a bare tool
// name ("Read") or a tool with an argument pattern ("Bash(git add:*)"),
// where the argument pattern must compile as a glob.
package toolspec

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Spec is a parsed tool specifier.
type Spec struct {
	Tool    string // tool name, e.g. "Bash"
	Pattern string // argument pattern inside parentheses, empty for bare specs
}

// Parse parses a tool specifier and validates its argument pattern.
func Parse(spec string) (Spec, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Spec{}, errors.New("tool specifier cannot be empty")
	}

	open := strings.Index(spec, "(")
	if open == -1 {
		if strings.Contains(spec, ")") {
			return Spec{}, errors.Errorf("malformed tool specifier %q", spec)
		}
		return Spec{Tool: spec}, nil
	}

	if !strings.HasSuffix(spec, ")") {
		return Spec{}, errors.Errorf("malformed tool specifier %q: missing closing parenthesis", spec)
	}

	tool := spec[:open]
	pattern := spec[open+1 : len(spec)-1]
	if tool == "" {
		return Spec{}, errors.Errorf("malformed tool specifier %q: missing tool name", spec)
	}
	if pattern == "" {
		return Spec{}, errors.Errorf("malformed tool specifier %q: empty argument pattern", spec)
	}

	if _, err := glob.Compile(pattern); err != nil {
		return Spec{}, errors.Wrapf(err, "invalid argument pattern in %q", spec)
	}

	return Spec{Tool: tool, Pattern: pattern}, nil
}

// ValidateAll parses every specifier in the list and returns the first error.
func ValidateAll(specs []string) error {
	for _, s := range specs {
		if _, err := Parse(s); err != nil {
			return err
		}
	}
	return nil
}
