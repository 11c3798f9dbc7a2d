// Package installer copies a plugin bundle into the host's directories so
// the corpus can be loaded from ./.claude or ~/.claude. Existing items are
// preserved unless force is set, and a dry run reports unified diffs of
// what would change without touching the tree.
package installer

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/pkg/errors"

	"github.com/mintuz/claude-plugins/pkg/bundle"
	"github.com/mintuz/claude-plugins/pkg/logger"
)

const claudeDir = ".claude"

// Installer handles bundle installation into host directories
type Installer struct {
	global    bool
	force     bool
	dryRun    bool
	targetDir string
}

// Option configures an Installer
type Option func(*Installer)

// WithGlobal installs into ~/.claude instead of ./.claude
func WithGlobal(global bool) Option {
	return func(i *Installer) {
		i.global = global
	}
}

// WithForce overwrites existing items
func WithForce(force bool) Option {
	return func(i *Installer) {
		i.force = force
	}
}

// WithDryRun reports what would change without writing
func WithDryRun(dryRun bool) Option {
	return func(i *Installer) {
		i.dryRun = dryRun
	}
}

// WithTargetDir sets an explicit target directory
func WithTargetDir(dir string) Option {
	return func(i *Installer) {
		i.targetDir = dir
	}
}

// New creates an Installer
func New(opts ...Option) (*Installer, error) {
	i := &Installer{}
	for _, opt := range opts {
		opt(i)
	}

	if i.targetDir == "" {
		if i.global {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(err, "failed to get home directory")
			}
			i.targetDir = filepath.Join(homeDir, claudeDir)
		} else {
			i.targetDir = claudeDir
		}
	}

	return i, nil
}

// TargetDir returns the resolved installation directory
func (i *Installer) TargetDir() string {
	return i.targetDir
}

// Result describes what an install or uninstall did
type Result struct {
	Installed []string // "kind/name" entries written (or that would be written)
	Skipped   []string // entries left alone because they already exist
	Removed   []string // entries removed by uninstall
	Diffs     []string // unified diffs, dry-run only
}

// Install copies the bundle's skills, agents, and commands into the target
// directory.
func (i *Installer) Install(ctx context.Context, b *bundle.Bundle) (*Result, error) {
	result := &Result{}

	for name, skill := range b.Skills {
		dest := filepath.Join(i.targetDir, bundle.SkillsDir, name)
		if err := i.installDir(skill.Directory, dest, "skill/"+name, result); err != nil {
			return nil, errors.Wrapf(err, "failed to install skill %s", name)
		}
	}

	for _, agent := range b.Agents {
		dest := filepath.Join(i.targetDir, bundle.AgentsDir, filepath.Base(agent.Path))
		if err := i.installFile(agent.Path, dest, "agent/"+agent.Name, result); err != nil {
			return nil, errors.Wrapf(err, "failed to install agent %s", agent.Name)
		}
	}

	commandsRoot := filepath.Join(b.Root, bundle.CommandsDir)
	for name, cmd := range b.Commands {
		relPath, err := filepath.Rel(commandsRoot, cmd.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve command path for %s", name)
		}
		dest := filepath.Join(i.targetDir, bundle.CommandsDir, relPath)
		if err := i.installFile(cmd.Path, dest, "command/"+name, result); err != nil {
			return nil, errors.Wrapf(err, "failed to install command %s", name)
		}
	}

	logger.G(ctx).WithFields(map[string]interface{}{
		"installed": len(result.Installed),
		"skipped":   len(result.Skipped),
		"target":    i.targetDir,
		"dryRun":    i.dryRun,
	}).Debug("install finished")

	return result, nil
}

// Uninstall removes the bundle's items from the target directory. Items not
// present are skipped silently.
func (i *Installer) Uninstall(ctx context.Context, b *bundle.Bundle) (*Result, error) {
	result := &Result{}

	for name := range b.Skills {
		dest := filepath.Join(i.targetDir, bundle.SkillsDir, name)
		if removed, err := i.removePath(dest); err != nil {
			return nil, errors.Wrapf(err, "failed to remove skill %s", name)
		} else if removed {
			result.Removed = append(result.Removed, "skill/"+name)
		}
	}

	for _, agent := range b.Agents {
		dest := filepath.Join(i.targetDir, bundle.AgentsDir, filepath.Base(agent.Path))
		if removed, err := i.removePath(dest); err != nil {
			return nil, errors.Wrapf(err, "failed to remove agent %s", agent.Name)
		} else if removed {
			result.Removed = append(result.Removed, "agent/"+agent.Name)
		}
	}

	commandsRoot := filepath.Join(b.Root, bundle.CommandsDir)
	for name, cmd := range b.Commands {
		relPath, err := filepath.Rel(commandsRoot, cmd.Path)
		if err != nil {
			continue
		}
		dest := filepath.Join(i.targetDir, bundle.CommandsDir, relPath)
		if removed, err := i.removePath(dest); err != nil {
			return nil, errors.Wrapf(err, "failed to remove command %s", name)
		} else if removed {
			result.Removed = append(result.Removed, "command/"+name)
		}
	}

	logger.G(ctx).WithField("removed", len(result.Removed)).Debug("uninstall finished")
	return result, nil
}

func (i *Installer) removePath(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if i.dryRun {
		return true, nil
	}
	if err := os.RemoveAll(path); err != nil {
		return false, err
	}
	return true, nil
}

// installDir installs a skill directory, file by file
func (i *Installer) installDir(src, dst, label string, result *Result) error {
	if _, err := os.Stat(dst); err == nil && !i.force {
		result.Skipped = append(result.Skipped, label)
		return nil
	}

	if i.dryRun {
		result.Installed = append(result.Installed, label)
		return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return err
			}
			relPath, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			return i.recordDiff(path, filepath.Join(dst, relPath), result)
		})
	}

	if i.force {
		if err := os.RemoveAll(dst); err != nil {
			return err
		}
	}

	if err := copyDir(src, dst); err != nil {
		return err
	}
	result.Installed = append(result.Installed, label)
	return nil
}

// installFile installs a single markdown file
func (i *Installer) installFile(src, dst, label string, result *Result) error {
	if _, err := os.Stat(dst); err == nil && !i.force {
		result.Skipped = append(result.Skipped, label)
		return nil
	}

	if i.dryRun {
		result.Installed = append(result.Installed, label)
		return i.recordDiff(src, dst, result)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	result.Installed = append(result.Installed, label)
	return nil
}

// recordDiff appends a unified diff of dst -> src to the result
func (i *Installer) recordDiff(src, dst string, result *Result) error {
	newContent, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	oldContent, err := os.ReadFile(dst)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if string(oldContent) == string(newContent) {
		return nil
	}

	diff := udiff.Unified(dst, src, string(oldContent), string(newContent))
	result.Diffs = append(result.Diffs, diff)
	return nil
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
