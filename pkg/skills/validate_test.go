package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSkill() *Skill {
	return &Skill{
		Name:        "writing-commits",
		Description: "Guidance for writing commit messages",
		Directory:   "/corpus/skills/writing-commits",
		Content:     "# Writing Commits\n\nKeep it short.\n",
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid skill", func(t *testing.T) {
		assert.NoError(t, Validate(validSkill()))
	})

	t.Run("missing name", func(t *testing.T) {
		s := validSkill()
		s.Name = ""
		assert.Error(t, Validate(s))
	})

	t.Run("name must be kebab-case", func(t *testing.T) {
		for _, name := range []string{"Writing Commits", "writing_commits", "UPPER", "-leading"} {
			s := validSkill()
			s.Name = name
			s.Directory = ""
			assert.Error(t, Validate(s), "name %q should be rejected", name)
		}
	})

	t.Run("missing description", func(t *testing.T) {
		s := validSkill()
		s.Description = ""
		assert.Error(t, Validate(s))
	})

	t.Run("description too long", func(t *testing.T) {
		s := validSkill()
		s.Description = strings.Repeat("x", maxDescriptionLen+1)
		assert.Error(t, Validate(s))
	})

	t.Run("empty body", func(t *testing.T) {
		s := validSkill()
		s.Content = "  \n"
		assert.Error(t, Validate(s))
	})

	t.Run("name and directory must agree", func(t *testing.T) {
		s := validSkill()
		s.Directory = "/corpus/skills/other-name"
		assert.Error(t, Validate(s))
	})

	t.Run("no directory skips the check", func(t *testing.T) {
		s := validSkill()
		s.Directory = ""
		assert.NoError(t, Validate(s))
	})

	t.Run("invalid allowed-tools entry", func(t *testing.T) {
		s := validSkill()
		s.AllowedTools = []string{"Bash(git"}
		assert.Error(t, Validate(s))
	})

	t.Run("valid allowed-tools", func(t *testing.T) {
		s := validSkill()
		s.AllowedTools = []string{"Read", "Bash(git log:*)"}
		assert.NoError(t, Validate(s))
	})
}
