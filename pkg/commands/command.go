// Package commands loads and validates the slash-command documents in the
// corpus. A command is a markdown prompt template; its name derives from the
// file path, with subdirectories namespacing the name ("git/commit.md"
// becomes "git:commit").
package commands

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/mintuz/claude-plugins/pkg/markdown"
	"github.com/mintuz/claude-plugins/pkg/toolspec"
)

// Metadata represents the optional YAML frontmatter of a command file
type Metadata struct {
	Description  string      `yaml:"description,omitempty"`
	ArgumentHint string      `yaml:"argument-hint,omitempty"`
	AllowedTools interface{} `yaml:"allowed-tools,omitempty"`
}

// Command represents a loaded slash-command template
type Command struct {
	Name         string // derived from file path, ":" separated namespaces
	Description  string
	ArgumentHint string
	AllowedTools []string
	Content      string
	Path         string
}

var segmentPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Discovery handles command discovery from configured directories
type Discovery struct {
	commandDirs []string
}

// Option configures a Discovery
type Option func(*Discovery) error

// WithCommandDirs sets custom command directories
func WithCommandDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.commandDirs = dirs
		return nil
	}
}

// WithDefaultDirs initializes with default command directories
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.commandDirs = []string{
			"./commands",
			"./.claude/commands",
			filepath.Join(homeDir, ".claude", "commands"),
		}
		return nil
	}
}

// NewDiscovery creates a new command discovery instance
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

// DiscoverCommands walks the configured directories and loads every markdown
// command file. Earlier directories win on name collision.
func (d *Discovery) DiscoverCommands() (map[string]*Command, error) {
	cmds := make(map[string]*Command)

	for _, dir := range d.commandDirs {
		_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			if !strings.HasSuffix(entry.Name(), ".md") {
				return nil
			}

			relPath, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}

			name := NameFromPath(relPath)
			if _, exists := cmds[name]; exists {
				return nil
			}

			cmd, err := LoadFile(path, name)
			if err != nil {
				return nil
			}
			cmds[name] = cmd
			return nil
		})
	}

	return cmds, nil
}

// GetCommand returns a specific command by name
func (d *Discovery) GetCommand(name string) (*Command, error) {
	cmds, err := d.DiscoverCommands()
	if err != nil {
		return nil, err
	}

	cmd, exists := cmds[name]
	if !exists {
		return nil, errors.Errorf("command '%s' not found", name)
	}
	return cmd, nil
}

// NameFromPath converts a relative markdown path to a command name,
// e.g. "git/commit.md" -> "git:commit".
func NameFromPath(relPath string) string {
	name := strings.TrimSuffix(filepath.ToSlash(relPath), ".md")
	return strings.ReplaceAll(name, "/", ":")
}

// LoadFile loads a command from a markdown file. Frontmatter is optional;
// a file without one is a bare prompt template.
func LoadFile(path, name string) (*Command, error) {
	doc, err := markdown.ParseFile(path)
	if err != nil {
		return nil, err
	}

	cmd := &Command{
		Name:    name,
		Content: doc.Body,
		Path:    path,
	}

	if doc.HasFrontmatter() {
		var meta Metadata
		if err := doc.Decode(&meta); err != nil {
			return nil, errors.Wrapf(err, "invalid frontmatter in command file %s", path)
		}
		cmd.Description = meta.Description
		cmd.ArgumentHint = meta.ArgumentHint
		cmd.AllowedTools = markdown.StringList(meta.AllowedTools)
	}

	return cmd, nil
}

// Validate checks a loaded command against the corpus conventions.
func Validate(cmd *Command) error {
	if cmd.Name == "" {
		return errors.New("command name is required")
	}
	for _, segment := range strings.Split(cmd.Name, ":") {
		if !segmentPattern.MatchString(segment) {
			return errors.Errorf("command name %q has invalid segment %q", cmd.Name, segment)
		}
	}
	if strings.TrimSpace(cmd.Content) == "" {
		return errors.Errorf("command %q has an empty body", cmd.Name)
	}
	if err := toolspec.ValidateAll(cmd.AllowedTools); err != nil {
		return errors.Wrapf(err, "command %q has an invalid allowed-tools entry", cmd.Name)
	}
	return nil
}
