// Package bundle loads a whole plugin corpus — skills, agents, commands,
// and the marketplace manifest — from a single root and validates it as a
// unit, collecting every finding instead of stopping at the first.
package bundle

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mintuz/claude-plugins/pkg/agents"
	"github.com/mintuz/claude-plugins/pkg/commands"
	"github.com/mintuz/claude-plugins/pkg/logger"
	"github.com/mintuz/claude-plugins/pkg/marketplace"
	"github.com/mintuz/claude-plugins/pkg/skills"
)

const (
	// SkillsDir is the skills directory relative to the bundle root
	SkillsDir = "skills"
	// AgentsDir is the agents directory relative to the bundle root
	AgentsDir = "agents"
	// CommandsDir is the commands directory relative to the bundle root
	CommandsDir = "commands"
)

// Bundle is a loaded plugin corpus
type Bundle struct {
	Root     string
	Skills   map[string]*skills.Skill
	Agents   []*agents.Agent
	Commands map[string]*commands.Command
	Manifest *marketplace.Manifest // nil when the bundle has no manifest
}

// Load loads every document kind from the bundle root. Entries that fail to
// parse are skipped here; Validate surfaces them as errors.
func Load(ctx context.Context, root string) (*Bundle, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "bundle root %s is not readable", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("bundle root %s is not a directory", root)
	}

	b := &Bundle{Root: root}

	skillDiscovery, err := skills.NewDiscovery(skills.WithSkillDirs(filepath.Join(root, SkillsDir)))
	if err != nil {
		return nil, err
	}
	if b.Skills, err = skillDiscovery.DiscoverSkills(); err != nil {
		return nil, err
	}

	agentProcessor, err := agents.NewProcessor(agents.WithAgentDirs(filepath.Join(root, AgentsDir)))
	if err != nil {
		return nil, err
	}
	if b.Agents, err = agentProcessor.ListAgents(ctx); err != nil {
		return nil, err
	}

	commandDiscovery, err := commands.NewDiscovery(commands.WithCommandDirs(filepath.Join(root, CommandsDir)))
	if err != nil {
		return nil, err
	}
	if b.Commands, err = commandDiscovery.DiscoverCommands(); err != nil {
		return nil, err
	}

	manifest, err := marketplace.Load(root)
	if err == nil {
		b.Manifest = manifest
	} else {
		logger.G(ctx).WithError(err).Debug("bundle has no marketplace manifest")
	}

	logger.G(ctx).WithFields(map[string]interface{}{
		"skills":   len(b.Skills),
		"agents":   len(b.Agents),
		"commands": len(b.Commands),
	}).Debug("loaded bundle")

	return b, nil
}

// Counts returns the number of loaded skills, agents, and commands.
func (b *Bundle) Counts() (skillCount, agentCount, commandCount int) {
	return len(b.Skills), len(b.Agents), len(b.Commands)
}
