package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, dir, content string) string {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644))
	return skillDir
}

func TestNewDiscovery(t *testing.T) {
	t.Run("with default dirs", func(t *testing.T) {
		discovery, err := NewDiscovery()
		require.NoError(t, err)
		assert.Len(t, discovery.skillDirs, 3)
	})

	t.Run("with custom dirs", func(t *testing.T) {
		customDirs := []string{"/tmp/skills1", "/tmp/skills2"}
		discovery, err := NewDiscovery(WithSkillDirs(customDirs...))
		require.NoError(t, err)
		assert.Equal(t, customDirs, discovery.skillDirs)
	})
}

func TestDiscoverSkills(t *testing.T) {
	tmpDir := t.TempDir()

	skillDir := writeSkill(t, tmpDir, "writing-commits", `---
name: writing-commits
description: Guidance for writing commit messages
allowed-tools:
  - Bash(git log:*)
  - Read
---

# Writing Commits

Keep the subject line short.
`)

	writeSkill(t, tmpDir, "tdd", `---
name: tdd
description: Red-green-refactor workflow
---

# TDD

Write the failing test first.
`)

	discovery, err := NewDiscovery(WithSkillDirs(tmpDir))
	require.NoError(t, err)

	found, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	assert.Len(t, found, 2)

	commits, exists := found["writing-commits"]
	require.True(t, exists)
	assert.Equal(t, "Guidance for writing commit messages", commits.Description)
	assert.Equal(t, skillDir, commits.Directory)
	assert.Equal(t, []string{"Bash(git log:*)", "Read"}, commits.AllowedTools)
	assert.Contains(t, commits.Content, "# Writing Commits")
	assert.NotContains(t, commits.Content, "description:")
}

func TestDiscoverSkillsPrecedence(t *testing.T) {
	localDir := t.TempDir()
	globalDir := t.TempDir()

	writeSkill(t, localDir, "tdd", "---\nname: tdd\ndescription: local copy\n---\nlocal\n")
	writeSkill(t, globalDir, "tdd", "---\nname: tdd\ndescription: global copy\n---\nglobal\n")

	discovery, err := NewDiscovery(WithSkillDirs(localDir, globalDir))
	require.NoError(t, err)

	found, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "local copy", found["tdd"].Description)
}

func TestDiscoverSkillsSkipsInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	writeSkill(t, tmpDir, "good", "---\nname: good\ndescription: ok\n---\nbody\n")
	writeSkill(t, tmpDir, "no-frontmatter", "# Just a heading\n")
	writeSkill(t, tmpDir, "no-name", "---\ndescription: nameless\n---\nbody\n")
	// plain file next to skill dirs is ignored
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("readme"), 0o644))

	discovery, err := NewDiscovery(WithSkillDirs(tmpDir))
	require.NoError(t, err)

	found, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, "good")
}

func TestDiscoverSkillsMissingDir(t *testing.T) {
	discovery, err := NewDiscovery(WithSkillDirs(filepath.Join(t.TempDir(), "does-not-exist")))
	require.NoError(t, err)

	found, err := discovery.DiscoverSkills()
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGetSkill(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, tmpDir, "tdd", "---\nname: tdd\ndescription: workflow\n---\nbody\n")

	discovery, err := NewDiscovery(WithSkillDirs(tmpDir))
	require.NoError(t, err)

	skill, err := discovery.GetSkill("tdd")
	require.NoError(t, err)
	assert.Equal(t, "tdd", skill.Name)

	_, err = discovery.GetSkill("nope")
	assert.Error(t, err)
}

func TestFilterByAllowlist(t *testing.T) {
	all := map[string]*Skill{
		"a": {Name: "a"},
		"b": {Name: "b"},
	}

	assert.Len(t, FilterByAllowlist(all, nil), 2)

	filtered := FilterByAllowlist(all, []string{"b", "missing"})
	assert.Len(t, filtered, 1)
	assert.Contains(t, filtered, "b")
}
