package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeValidBundle(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "skills/writing-commits/SKILL.md", `---
name: writing-commits
description: Guidance for writing commit messages
---

# Writing Commits

Keep it short.
`)
	writeFile(t, root, "agents/code-reviewer.md", `---
name: code-reviewer
description: Reviews pull requests
---

You review code.
`)
	writeFile(t, root, "commands/git/commit.md", `---
description: Create a commit
---

Commit the staged changes.
`)
	writeFile(t, root, "marketplace.yaml", `name: developer-workflow
owner:
  name: Mintuz
plugins:
  - name: developer-workflow
    source: ./
`)
	return root
}

func TestLoad(t *testing.T) {
	root := writeValidBundle(t)

	b, err := Load(context.Background(), root)
	require.NoError(t, err)

	skillCount, agentCount, commandCount := b.Counts()
	assert.Equal(t, 1, skillCount)
	assert.Equal(t, 1, agentCount)
	assert.Equal(t, 1, commandCount)

	assert.Contains(t, b.Skills, "writing-commits")
	assert.Contains(t, b.Commands, "git:commit")
	require.NotNil(t, b.Manifest)
	assert.Equal(t, "developer-workflow", b.Manifest.Name)
}

func TestLoadWithoutManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "skills/tdd/SKILL.md", "---\nname: tdd\ndescription: workflow\n---\nbody\n")

	b, err := Load(context.Background(), root)
	require.NoError(t, err)
	assert.Nil(t, b.Manifest)
	assert.Len(t, b.Skills, 1)
}

func TestLoadBadRoot(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("valid bundle", func(t *testing.T) {
		root := writeValidBundle(t)
		b, err := Load(context.Background(), root)
		require.NoError(t, err)
		assert.NoError(t, b.Validate())
	})

	t.Run("aggregates multiple findings", func(t *testing.T) {
		root := writeValidBundle(t)
		// broken skill: name disagrees with directory
		writeFile(t, root, "skills/mismatch/SKILL.md", "---\nname: other\ndescription: d\n---\nbody\n")
		// broken agent: no frontmatter
		writeFile(t, root, "agents/broken.md", "just prose\n")
		// broken command: empty body
		writeFile(t, root, "commands/empty.md", "---\ndescription: d\n---\n")

		b, err := Load(context.Background(), root)
		require.NoError(t, err)

		err = b.Validate()
		require.Error(t, err)
		msg := err.Error()
		assert.Contains(t, msg, "mismatch")
		assert.Contains(t, msg, "broken.md")
		assert.Contains(t, msg, "empty.md")
	})

	t.Run("missing SKILL.md in skill directory", func(t *testing.T) {
		root := writeValidBundle(t)
		require.NoError(t, os.MkdirAll(filepath.Join(root, "skills", "hollow"), 0o755))

		b, err := Load(context.Background(), root)
		require.NoError(t, err)

		err = b.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing SKILL.md")
	})

	t.Run("include patterns narrow the run", func(t *testing.T) {
		root := writeValidBundle(t)
		writeFile(t, root, "agents/broken.md", "just prose\n")

		b, err := Load(context.Background(), root)
		require.NoError(t, err)

		// only skills are checked, so the broken agent is not reported
		assert.NoError(t, b.Validate(WithIncludes("skills/**")))

		err = b.Validate(WithIncludes("agents/**"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.md")
	})

	t.Run("invalid manifest is reported", func(t *testing.T) {
		root := writeValidBundle(t)
		writeFile(t, root, "marketplace.yaml", "owner:\n  name: Mintuz\nplugins: []\n")

		b, err := Load(context.Background(), root)
		require.NoError(t, err)

		err = b.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marketplace")
	})
}
