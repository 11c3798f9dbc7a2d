package toolspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("bare tool name", func(t *testing.T) {
		spec, err := Parse("Read")
		require.NoError(t, err)
		assert.Equal(t, "Read", spec.Tool)
		assert.Empty(t, spec.Pattern)
	})

	t.Run("tool with argument pattern", func(t *testing.T) {
		spec, err := Parse("Bash(git add:*)")
		require.NoError(t, err)
		assert.Equal(t, "Bash", spec.Tool)
		assert.Equal(t, "git add:*", spec.Pattern)
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		spec, err := Parse("  Grep ")
		require.NoError(t, err)
		assert.Equal(t, "Grep", spec.Tool)
	})

	t.Run("rejects malformed specs", func(t *testing.T) {
		for _, spec := range []string{"", "Bash(git", "Bash)", "(git:*)", "Bash()"} {
			_, err := Parse(spec)
			assert.Error(t, err, "spec %q should be rejected", spec)
		}
	})

	t.Run("rejects invalid glob pattern", func(t *testing.T) {
		_, err := Parse("Bash([)")
		assert.Error(t, err)
	})
}

func TestValidateAll(t *testing.T) {
	assert.NoError(t, ValidateAll([]string{"Read", "Bash(git:*)", "Grep"}))
	assert.Error(t, ValidateAll([]string{"Read", "Bash("}))
	assert.NoError(t, ValidateAll(nil))
}
