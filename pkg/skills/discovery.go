package skills

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mintuz/claude-plugins/pkg/markdown"
)

const skillFileName = "SKILL.md"

// Discovery handles skill discovery from configured directories
type Discovery struct {
	skillDirs []string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets custom skill directories
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.skillDirs = dirs
		return nil
	}
}

// WithDefaultDirs initializes with default skill directories
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.skillDirs = []string{
			"./skills",                                  // Corpus repo layout (highest precedence)
			"./.claude/skills",                          // Project-local installed
			filepath.Join(homeDir, ".claude", "skills"), // User-global installed
		}
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		opts = []Option{WithDefaultDirs()}
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// DiscoverSkills finds all available skills from configured directories.
// Earlier directories win on name collision; entries that fail to parse are
// skipped.
func (d *Discovery) DiscoverSkills() (map[string]*Skill, error) {
	skills := make(map[string]*Skill)

	for _, dir := range d.skillDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			entryPath := filepath.Join(dir, entry.Name())

			// Stat rather than entry.IsDir so symlinked skill dirs resolve
			info, err := os.Stat(entryPath)
			if err != nil || !info.IsDir() {
				continue
			}

			skill, err := Load(entryPath)
			if err != nil {
				continue
			}

			if _, exists := skills[skill.Name]; !exists {
				skills[skill.Name] = skill
			}
		}
	}

	return skills, nil
}

// GetSkill returns a specific skill by name
func (d *Discovery) GetSkill(name string) (*Skill, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	skill, exists := skills[name]
	if !exists {
		return nil, errors.Errorf("skill '%s' not found", name)
	}

	return skill, nil
}

// ListSkillNames returns the names of all available skills
func (d *Discovery) ListSkillNames() ([]string, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}

	return names, nil
}

// Load loads a single skill from its directory
func Load(dir string) (*Skill, error) {
	doc, err := markdown.ParseFile(filepath.Join(dir, skillFileName))
	if err != nil {
		return nil, err
	}

	if !doc.HasFrontmatter() {
		return nil, errors.Errorf("skill at %s is missing frontmatter", dir)
	}

	var meta Metadata
	if err := doc.Decode(&meta); err != nil {
		return nil, errors.Wrapf(err, "invalid frontmatter in skill at %s", dir)
	}

	if meta.Name == "" {
		return nil, errors.Errorf("skill at %s: name is required in frontmatter", dir)
	}
	if meta.Description == "" {
		return nil, errors.Errorf("skill at %s: description is required in frontmatter", dir)
	}

	return &Skill{
		Name:         meta.Name,
		Description:  meta.Description,
		AllowedTools: markdown.StringList(meta.AllowedTools),
		Directory:    dir,
		Content:      doc.Body,
	}, nil
}

// FilterByAllowlist filters skills by an allowlist of names.
// If the allowlist is empty, all skills are returned.
func FilterByAllowlist(skills map[string]*Skill, allowed []string) map[string]*Skill {
	if len(allowed) == 0 {
		return skills
	}

	filtered := make(map[string]*Skill)
	for _, name := range allowed {
		if skill, exists := skills[name]; exists {
			filtered[name] = skill
		}
	}
	return filtered
}
