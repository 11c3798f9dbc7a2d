package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/mintuz/claude-plugins/pkg/keepawake"
)

func TestNewInhibitorFromConfig(t *testing.T) {
	viper.Set("keepawake.command", "systemd-inhibit --what=idle sleep 1800")
	t.Cleanup(func() {
		viper.Set("keepawake.command", "")
		viper.Set("keepawake.timeout", keepawake.DefaultTimeout)
	})

	name, args := newInhibitor().CommandLine()
	assert.Equal(t, "systemd-inhibit", name)
	assert.Equal(t, []string{"--what=idle", "sleep", "1800"}, args)
}

func TestNewInhibitorDefaultCommandUsesTimeout(t *testing.T) {
	viper.Set("keepawake.command", "")
	viper.Set("keepawake.timeout", 30*time.Minute)
	t.Cleanup(func() {
		viper.Set("keepawake.timeout", keepawake.DefaultTimeout)
	})

	name, args := newInhibitor().CommandLine()
	assert.Equal(t, "caffeinate", name)
	assert.Equal(t, []string{"-dims", "-t", "1800"}, args)
}
