package skills

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/mintuz/claude-plugins/pkg/toolspec"
)

// maxDescriptionLen bounds the description the host loads into every prompt
const maxDescriptionLen = 1024

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks a loaded skill against the corpus conventions.
func Validate(skill *Skill) error {
	if skill.Name == "" {
		return errors.New("skill name is required")
	}
	if !namePattern.MatchString(skill.Name) {
		return errors.Errorf("skill name %q must be lowercase kebab-case", skill.Name)
	}
	if skill.Description == "" {
		return errors.New("skill description is required")
	}
	if len(skill.Description) > maxDescriptionLen {
		return errors.Errorf("skill %q description exceeds %d characters", skill.Name, maxDescriptionLen)
	}
	if strings.TrimSpace(skill.Content) == "" {
		return errors.Errorf("skill %q has an empty body", skill.Name)
	}

	if skill.Directory != "" {
		dirName := filepath.Base(skill.Directory)
		if dirName != skill.Name {
			return errors.Errorf("skill %q does not match its directory name %q", skill.Name, dirName)
		}
	}

	if err := toolspec.ValidateAll(skill.AllowedTools); err != nil {
		return errors.Wrapf(err, "skill %q has an invalid allowed-tools entry", skill.Name)
	}

	return nil
}
