// Package skills loads and validates the skill documents in the corpus.
// A skill is a directory containing a SKILL.md file whose YAML frontmatter
// describes when the host should load it into context.
package skills

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name         string   // Unique name from frontmatter
	Description  string   // Brief description for host decision-making
	AllowedTools []string // Optional tool allowlist from frontmatter
	Directory    string   // Full path to the skill directory
	Content      string   // Body of SKILL.md without frontmatter
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	AllowedTools interface{} `yaml:"allowed-tools,omitempty"`
}
