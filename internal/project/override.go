package project

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OverrideFile is the project-level override document: YAML front-matter
// followed by a free-text body.
const OverrideFile = ".primer.md"

// Override carries explicit project settings. Type and Name take precedence
// over auto-detection; the remaining fields pass through unmodified for
// downstream use.
type Override struct {
	Type        string            `yaml:"type"`
	Name        string            `yaml:"name"`
	Includes    []string          `yaml:"includes"`
	Excludes    []string          `yaml:"excludes"`
	Annotations map[string]string `yaml:"annotations"`

	// Body is the free text after the front-matter, appended to the
	// compiled document as project-specific context.
	Body string `yaml:"-"`
	Path string `yaml:"-"`
}

// LoadOverride reads the override document from root. A missing, unreadable,
// or malformed document returns nil; auto-detection proceeds normally.
func LoadOverride(root string) *Override {
	path := filepath.Join(root, OverrideFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	front, body := splitFrontMatter(string(data))

	var o Override
	if front != "" {
		if err := yaml.Unmarshal([]byte(front), &o); err != nil {
			return nil
		}
	}
	o.Body = strings.TrimSpace(body)
	o.Path = path
	return &o
}

// splitFrontMatter separates a leading "---" fenced YAML block from the
// document body. A document without front-matter is all body.
func splitFrontMatter(doc string) (front, body string) {
	trimmed := strings.TrimPrefix(doc, "\uFEFF")
	if !strings.HasPrefix(trimmed, "---\n") && trimmed != "---" {
		return "", doc
	}
	rest := strings.TrimPrefix(trimmed, "---\n")
	end := strings.Index(rest, "\n---")
	if end == -1 {
		return "", doc
	}
	front = rest[:end]
	body = rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return front, body
}
