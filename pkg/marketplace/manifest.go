// Package marketplace models the manifest that describes this plugin bundle
// to the host's distribution mechanism. The manifest is authored as
// marketplace.yaml at the bundle root and shipped to the host as
// .claude-plugin/marketplace.json.
package marketplace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// SourceFileName is the authored manifest at the bundle root
	SourceFileName = "marketplace.yaml"
	// HostDirName is the directory the host reads the generated manifest from
	HostDirName = ".claude-plugin"
	// HostFileName is the generated manifest consumed by the host
	HostFileName = "marketplace.json"
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Owner identifies the bundle maintainer
type Owner struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// PluginEntry describes one plugin offered by the bundle
type PluginEntry struct {
	Name        string `yaml:"name" json:"name"`
	Source      string `yaml:"source" json:"source"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Manifest is the marketplace manifest for the bundle
type Manifest struct {
	Name    string        `yaml:"name" json:"name"`
	Owner   Owner         `yaml:"owner" json:"owner"`
	Plugins []PluginEntry `yaml:"plugins" json:"plugins"`
}

// Load reads and parses the authored YAML manifest from the bundle root.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, SourceFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return &m, nil
}

// Validate checks the manifest against the bundle rooted at root.
func (m *Manifest) Validate(root string) error {
	if m.Name == "" {
		return errors.New("marketplace name is required")
	}
	if !namePattern.MatchString(m.Name) {
		return errors.Errorf("marketplace name %q must be lowercase kebab-case", m.Name)
	}
	if m.Owner.Name == "" {
		return errors.New("marketplace owner name is required")
	}
	if len(m.Plugins) == 0 {
		return errors.New("marketplace must list at least one plugin")
	}

	seen := make(map[string]bool)
	for _, p := range m.Plugins {
		if p.Name == "" {
			return errors.New("plugin entry is missing a name")
		}
		if !namePattern.MatchString(p.Name) {
			return errors.Errorf("plugin name %q must be lowercase kebab-case", p.Name)
		}
		if seen[p.Name] {
			return errors.Errorf("duplicate plugin name %q", p.Name)
		}
		seen[p.Name] = true

		if p.Source == "" {
			return errors.Errorf("plugin %q is missing a source", p.Name)
		}
		if strings.HasPrefix(p.Source, "./") || p.Source == "." {
			sourceDir := filepath.Join(root, p.Source)
			info, err := os.Stat(sourceDir)
			if err != nil || !info.IsDir() {
				return errors.Errorf("plugin %q source %q does not resolve to a directory", p.Name, p.Source)
			}
		}
	}

	return nil
}

// WriteHostManifest generates .claude-plugin/marketplace.json under root
// from the manifest. Output is deterministic for stable diffs.
func (m *Manifest) WriteHostManifest(root string) (string, error) {
	hostDir := filepath.Join(root, HostDirName)
	if err := os.MkdirAll(hostDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create host manifest directory")
	}

	data, err := m.JSON()
	if err != nil {
		return "", err
	}

	path := filepath.Join(hostDir, HostFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}

	return path, nil
}

// JSON renders the manifest as the host-facing JSON document.
func (m *Manifest) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal manifest")
	}
	return append(data, '\n'), nil
}
