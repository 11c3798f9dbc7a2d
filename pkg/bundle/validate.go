package bundle

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mintuz/claude-plugins/pkg/agents"
	"github.com/mintuz/claude-plugins/pkg/commands"
	"github.com/mintuz/claude-plugins/pkg/marketplace"
	"github.com/mintuz/claude-plugins/pkg/skills"
)

// ValidateOption configures a validation run
type ValidateOption func(*validator)

// WithIncludes narrows validation to files matching any of the doublestar
// patterns, relative to the bundle root.
func WithIncludes(patterns ...string) ValidateOption {
	return func(v *validator) {
		v.includes = patterns
	}
}

type validator struct {
	root     string
	includes []string
	result   *multierror.Error
}

// Validate walks the bundle tree strictly: every skill directory, agent
// file, and command file must load and pass its kind's validation, and the
// manifest (when present) must validate against the tree. All findings are
// aggregated.
func (b *Bundle) Validate(opts ...ValidateOption) error {
	v := &validator{root: b.Root}
	for _, opt := range opts {
		opt(v)
	}

	v.validateSkills()
	v.validateAgents()
	v.validateCommands()
	v.validateManifest()

	return v.result.ErrorOrNil()
}

func (v *validator) included(relPath string) bool {
	if len(v.includes) == 0 {
		return true
	}
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range v.includes {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

func (v *validator) report(err error) {
	if err != nil {
		v.result = multierror.Append(v.result, err)
	}
}

func (v *validator) validateSkills() {
	skillsRoot := filepath.Join(v.root, SkillsDir)
	entries, err := os.ReadDir(skillsRoot)
	if err != nil {
		return
	}

	for _, entry := range entries {
		entryPath := filepath.Join(skillsRoot, entry.Name())
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		relPath := filepath.Join(SkillsDir, entry.Name(), "SKILL.md")
		if !v.included(relPath) {
			continue
		}

		if _, err := os.Stat(filepath.Join(entryPath, "SKILL.md")); err != nil {
			v.report(errors.Errorf("%s: missing SKILL.md", filepath.Join(SkillsDir, entry.Name())))
			continue
		}

		skill, err := skills.Load(entryPath)
		if err != nil {
			v.report(errors.Wrap(err, relPath))
			continue
		}
		if err := skills.Validate(skill); err != nil {
			v.report(errors.Wrap(err, relPath))
		}
	}
}

func (v *validator) validateAgents() {
	agentsRoot := filepath.Join(v.root, AgentsDir)
	entries, err := os.ReadDir(agentsRoot)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		relPath := filepath.Join(AgentsDir, entry.Name())
		if !v.included(relPath) {
			continue
		}

		agent, err := agents.LoadFile(filepath.Join(agentsRoot, entry.Name()))
		if err != nil {
			v.report(errors.Wrap(err, relPath))
			continue
		}
		if err := agents.Validate(agent); err != nil {
			v.report(errors.Wrap(err, relPath))
		}
	}
}

func (v *validator) validateCommands() {
	commandsRoot := filepath.Join(v.root, CommandsDir)

	_ = filepath.WalkDir(commandsRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}

		relToCommands, err := filepath.Rel(commandsRoot, path)
		if err != nil {
			return nil
		}

		relPath := filepath.Join(CommandsDir, relToCommands)
		if !v.included(relPath) {
			return nil
		}

		cmd, err := commands.LoadFile(path, commands.NameFromPath(relToCommands))
		if err != nil {
			v.report(errors.Wrap(err, relPath))
			return nil
		}
		if err := commands.Validate(cmd); err != nil {
			v.report(errors.Wrap(err, relPath))
		}
		return nil
	})
}

func (v *validator) validateManifest() {
	if !v.included(marketplace.SourceFileName) {
		return
	}

	manifest, err := marketplace.Load(v.root)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return
		}
		v.report(errors.Wrap(err, marketplace.SourceFileName))
		return
	}

	if err := manifest.Validate(v.root); err != nil {
		v.report(errors.Wrap(err, marketplace.SourceFileName))
	}
}
