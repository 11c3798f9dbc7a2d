// Package markdown parses the YAML-frontmatter markdown documents that make
// up the plugin corpus. Frontmatter is extracted with goldmark and can be
// decoded into typed structs.
package markdown

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// Document is a markdown file split into frontmatter metadata and body.
type Document struct {
	Meta map[string]interface{}
	Body string
}

// Parse splits content into frontmatter metadata and markdown body.
// Documents without frontmatter parse successfully with a nil Meta.
func Parse(content []byte) (*Document, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	doc := &Document{
		Meta: meta.Get(pctx),
		Body: string(content),
	}
	// only strip the leading block when it really parsed as frontmatter; a
	// frontmatter-less document may legitimately open with a thematic break
	if doc.Meta != nil {
		doc.Body = extractBody(string(content))
	}
	return doc, nil
}

// ParseFile reads and parses a markdown file from disk.
func ParseFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	doc, err := Parse(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return doc, nil
}

// HasFrontmatter reports whether the document carried a frontmatter block.
func (d *Document) HasFrontmatter() bool {
	return d.Meta != nil
}

// Decode unmarshals the frontmatter metadata into a typed struct via a YAML
// round trip, so struct fields use standard yaml tags.
func (d *Document) Decode(out interface{}) error {
	if d.Meta == nil {
		return errors.New("document has no frontmatter")
	}

	raw, err := yaml.Marshal(d.Meta)
	if err != nil {
		return errors.Wrap(err, "failed to re-marshal frontmatter")
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode frontmatter")
	}
	return nil
}

// extractBody removes the YAML frontmatter block and returns the body with
// leading blank lines trimmed.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

// StringList normalizes a frontmatter field that may be either a YAML array
// or a comma-separated string into a slice of trimmed strings.
func StringList(field interface{}) []string {
	switch v := field.(type) {
	case []interface{}:
		var result []string
		for _, item := range v {
			if str, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(str); trimmed != "" {
					result = append(result, trimmed)
				}
			}
		}
		return result
	case string:
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	default:
		return nil
	}
}
