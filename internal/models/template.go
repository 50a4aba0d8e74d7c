package models

import (
	"strings"
	"time"
)

// Template represents a prompt pattern with named placeholders, stored as a
// markdown file with YAML frontmatter
type Template struct {
	// Frontmatter fields
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Summary   string    `yaml:"description,omitempty"`
	Tags      []string  `yaml:"tags,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`

	// Content fields
	Pattern  string `yaml:"-"` // The pattern text after frontmatter
	FilePath string `yaml:"-"` // Path to the file, relative to the library root
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return cleanString(t.Name)
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	if t.Name != "" {
		return cleanString(t.Name)
	}
	return cleanString(t.ID)
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	var parts []string

	// Truncate long summaries so the list row stays readable
	if t.Summary != "" {
		summary := cleanString(t.Summary)
		maxSummaryLength := 60
		if len(summary) > maxSummaryLength {
			summary = summary[:maxSummaryLength-3] + "..."
		}
		if summary != "" {
			parts = append(parts, summary)
		}
	}

	if !t.UpdatedAt.IsZero() {
		parts = append(parts, "Last edited: "+t.UpdatedAt.Format("2006-01-02 15:04"))
	}

	if len(t.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(t.Tags, ", "))
	}

	result := strings.Join(parts, " • ")
	maxLength := 100
	if len(result) > maxLength {
		result = result[:maxLength-3] + "..."
	}

	return cleanString(result)
}

// cleanString removes control characters that might break list rendering
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
		} else if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
