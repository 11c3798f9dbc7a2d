// Package agents loads and validates the agent documents in the corpus.
// An agent is a markdown file whose frontmatter names a specialized persona
// and optional toolset, and whose body is the system prompt the host adopts.
package agents

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mintuz/claude-plugins/pkg/logger"
	"github.com/mintuz/claude-plugins/pkg/markdown"
	"github.com/mintuz/claude-plugins/pkg/toolspec"
)

// Metadata represents the YAML frontmatter configuration for an agent
type Metadata struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Tools       interface{} `yaml:"tools,omitempty"` // list or comma-separated string
	Model       string      `yaml:"model,omitempty"` // sonnet, opus, haiku, or inherit
}

// Agent represents a loaded agent with its metadata, system prompt, and file path
type Agent struct {
	Name         string
	Description  string
	Tools        []string
	Model        string
	SystemPrompt string
	Path         string
}

// validModels are the model aliases the host accepts in agent frontmatter
var validModels = map[string]bool{
	"sonnet":  true,
	"opus":    true,
	"haiku":   true,
	"inherit": true,
}

// Processor handles loading agent definitions from disk
type Processor struct {
	agentDirs []string
}

// ProcessorOption configures a Processor
type ProcessorOption func(*Processor) error

// WithAgentDirs sets custom agent directories
func WithAgentDirs(dirs ...string) ProcessorOption {
	return func(p *Processor) error {
		if len(dirs) == 0 {
			return errors.New("at least one agent directory must be specified")
		}
		p.agentDirs = dirs
		return nil
	}
}

// WithDefaultDirs sets the default agent directories
func WithDefaultDirs() ProcessorOption {
	return func(p *Processor) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		p.agentDirs = []string{
			"./agents",                                  // Corpus repo layout (highest precedence)
			"./.claude/agents",                          // Project-local installed
			filepath.Join(homeDir, ".claude", "agents"), // User-global installed
		}
		return nil
	}
}

// NewProcessor creates a new agent processor with optional configuration
func NewProcessor(opts ...ProcessorOption) (*Processor, error) {
	p := &Processor{}

	if len(opts) == 0 {
		opts = []ProcessorOption{WithDefaultDirs()}
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, errors.Wrap(err, "failed to apply agent processor option")
		}
	}

	return p, nil
}

// findAgentFile searches for an agent file in the configured directories
func (p *Processor) findAgentFile(agentName string) (string, error) {
	possibleNames := []string{
		agentName + ".md",
		agentName,
	}

	for _, dir := range p.agentDirs {
		for _, name := range possibleNames {
			fullPath := filepath.Join(dir, name)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath, nil
			}
		}
	}

	return "", errors.Errorf("agent '%s' not found in directories: %v", agentName, p.agentDirs)
}

// LoadAgent loads a single agent by name
func (p *Processor) LoadAgent(ctx context.Context, agentName string) (*Agent, error) {
	logger.G(ctx).WithField("agent", agentName).Debug("loading agent")

	agentPath, err := p.findAgentFile(agentName)
	if err != nil {
		return nil, err
	}

	return LoadFile(agentPath)
}

// LoadFile loads an agent from a markdown file path
func LoadFile(path string) (*Agent, error) {
	doc, err := markdown.ParseFile(path)
	if err != nil {
		return nil, err
	}

	if !doc.HasFrontmatter() {
		return nil, errors.Errorf("agent file %s is missing frontmatter", path)
	}

	var meta Metadata
	if err := doc.Decode(&meta); err != nil {
		return nil, errors.Wrapf(err, "invalid frontmatter in agent file %s", path)
	}

	name := meta.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	return &Agent{
		Name:         name,
		Description:  meta.Description,
		Tools:        markdown.StringList(meta.Tools),
		Model:        meta.Model,
		SystemPrompt: doc.Body,
		Path:         path,
	}, nil
}

// ListAgents returns all available agents from the configured directories
func (p *Processor) ListAgents(ctx context.Context) ([]*Agent, error) {
	var agents []*Agent
	seen := make(map[string]bool)

	for _, dir := range p.agentDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.G(ctx).WithField("dir", dir).Debug("agent directory not found, skipping")
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			agentName := strings.TrimSuffix(entry.Name(), ".md")
			if seen[agentName] {
				continue
			}

			agent, err := LoadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				logger.G(ctx).WithField("agent", agentName).WithError(err).Warn("failed to load agent, skipping")
				continue
			}

			agents = append(agents, agent)
			seen[agentName] = true
		}
	}

	logger.G(ctx).WithField("count", len(agents)).Debug("loaded agents")
	return agents, nil
}

// Validate checks that an agent has all required fields
func Validate(agent *Agent) error {
	if agent.Name == "" {
		return errors.New("agent name is required")
	}
	if agent.Description == "" {
		return errors.Errorf("agent %q: description is required", agent.Name)
	}
	if strings.TrimSpace(agent.SystemPrompt) == "" {
		return errors.Errorf("agent %q: system prompt cannot be empty", agent.Name)
	}

	if agent.Model != "" && !validModels[agent.Model] {
		return errors.Errorf("agent %q has unsupported model %q", agent.Name, agent.Model)
	}

	if err := toolspec.ValidateAll(agent.Tools); err != nil {
		return errors.Wrapf(err, "agent %q has an invalid tools entry", agent.Name)
	}

	if agent.Path != "" {
		fileName := strings.TrimSuffix(filepath.Base(agent.Path), ".md")
		if fileName != agent.Name {
			return errors.Errorf("agent %q does not match its file name %q", agent.Name, fileName)
		}
	}

	return nil
}
