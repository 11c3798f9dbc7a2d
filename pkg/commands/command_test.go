package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCommand(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const commitCommand = `---
description: Create a git commit from staged changes
argument-hint: "[message]"
allowed-tools:
  - Bash(git add:*)
  - Bash(git commit:*)
---

Create a commit for the staged changes. Use $ARGUMENTS as the message if given.
`

func TestDiscoverCommands(t *testing.T) {
	tmpDir := t.TempDir()
	writeCommand(t, tmpDir, "git/commit.md", commitCommand)
	writeCommand(t, tmpDir, "review.md", "Review the current diff.\n")

	d, err := NewDiscovery(WithCommandDirs(tmpDir))
	require.NoError(t, err)

	cmds, err := d.DiscoverCommands()
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	commit, exists := cmds["git:commit"]
	require.True(t, exists)
	assert.Equal(t, "Create a git commit from staged changes", commit.Description)
	assert.Equal(t, "[message]", commit.ArgumentHint)
	assert.Equal(t, []string{"Bash(git add:*)", "Bash(git commit:*)"}, commit.AllowedTools)
	assert.Contains(t, commit.Content, "$ARGUMENTS")

	// frontmatter is optional for commands
	review, exists := cmds["review"]
	require.True(t, exists)
	assert.Empty(t, review.Description)
	assert.Contains(t, review.Content, "Review the current diff.")
}

func TestDiscoverCommandsPrecedence(t *testing.T) {
	localDir := t.TempDir()
	globalDir := t.TempDir()

	writeCommand(t, localDir, "review.md", "local template\n")
	writeCommand(t, globalDir, "review.md", "global template\n")

	d, err := NewDiscovery(WithCommandDirs(localDir, globalDir))
	require.NoError(t, err)

	cmds, err := d.DiscoverCommands()
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Contains(t, cmds["review"].Content, "local template")
}

func TestGetCommand(t *testing.T) {
	tmpDir := t.TempDir()
	writeCommand(t, tmpDir, "review.md", "Review.\n")

	d, err := NewDiscovery(WithCommandDirs(tmpDir))
	require.NoError(t, err)

	cmd, err := d.GetCommand("review")
	require.NoError(t, err)
	assert.Equal(t, "review", cmd.Name)

	_, err = d.GetCommand("missing")
	assert.Error(t, err)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "review", NameFromPath("review.md"))
	assert.Equal(t, "git:commit", NameFromPath("git/commit.md"))
	assert.Equal(t, "a:b:c", NameFromPath(filepath.Join("a", "b", "c.md")))
}

func TestValidate(t *testing.T) {
	valid := func() *Command {
		return &Command{
			Name:    "git:commit",
			Content: "Create a commit.\n",
		}
	}

	t.Run("valid command", func(t *testing.T) {
		assert.NoError(t, Validate(valid()))
	})

	t.Run("invalid name segment", func(t *testing.T) {
		c := valid()
		c.Name = "git:Commit Now"
		assert.Error(t, Validate(c))
	})

	t.Run("empty body", func(t *testing.T) {
		c := valid()
		c.Content = "\n"
		assert.Error(t, Validate(c))
	})

	t.Run("invalid allowed-tools", func(t *testing.T) {
		c := valid()
		c.AllowedTools = []string{"Bash("}
		assert.Error(t, Validate(c))
	})
}
