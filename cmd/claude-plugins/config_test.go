package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValidateConfigFromFlags(t *testing.T) {
	require.NoError(t, validateCmd.Flags().Set("include", "skills/**"))
	require.NoError(t, validateCmd.Flags().Set("watch", "true"))

	config := getValidateConfigFromFlags(validateCmd)
	assert.Equal(t, []string{"skills/**"}, config.Includes)
	assert.True(t, config.Watch)
}

func TestTruncate(t *testing.T) {
	t.Run("short string unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", truncate("hello", 60))
	})

	t.Run("long string cut with ellipsis", func(t *testing.T) {
		got := truncate(strings.Repeat("a", 80), 60)
		assert.Len(t, got, 60)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("multi-byte runes stay intact", func(t *testing.T) {
		got := truncate(strings.Repeat("ありがとう", 20), 60)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 60, utf8.RuneCountInString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}

func TestGetInstallConfigFromFlags(t *testing.T) {
	require.NoError(t, installCmd.Flags().Set("global", "true"))
	require.NoError(t, installCmd.Flags().Set("dry-run", "true"))

	config := getInstallConfigFromFlags(installCmd)
	assert.True(t, config.Global)
	assert.False(t, config.Force)
	assert.True(t, config.DryRun)
}
