package models

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
)

// Both models are rendered by the bubbles list component
var (
	_ list.Item = Template{}
	_ list.Item = Artifact{}
)

func TestTemplateTitle(t *testing.T) {
	named := Template{ID: "portrait", Name: "Portrait Prompt"}
	if named.Title() != "Portrait Prompt" {
		t.Errorf("Expected name as title, got '%s'", named.Title())
	}

	unnamed := Template{ID: "portrait"}
	if unnamed.Title() != "portrait" {
		t.Errorf("Expected ID fallback title, got '%s'", unnamed.Title())
	}
}

func TestTemplateDescriptionUsesSummaryField(t *testing.T) {
	template := Template{
		ID:        "portrait",
		Summary:   "A portrait in a given style",
		Tags:      []string{"art"},
		UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	desc := template.Description()
	if !strings.Contains(desc, "A portrait in a given style") {
		t.Errorf("Description should include the summary, got '%s'", desc)
	}
	if !strings.Contains(desc, "Tags: art") {
		t.Errorf("Description should include tags, got '%s'", desc)
	}
	if !strings.Contains(desc, "2026-08-01") {
		t.Errorf("Description should include last-edited date, got '%s'", desc)
	}
}

func TestTemplateDescriptionTruncatesLongSummary(t *testing.T) {
	template := Template{Summary: strings.Repeat("long summary ", 20)}

	desc := template.Description()
	if !strings.Contains(desc, "...") {
		t.Errorf("Long summary should be truncated, got '%s'", desc)
	}
	if len(desc) > 100 {
		t.Errorf("Description should be capped at 100 chars, got %d", len(desc))
	}
}

func TestTemplateFilterValueStripsControlCharacters(t *testing.T) {
	template := Template{Name: "multi\nline\tname"}
	if template.FilterValue() != "multi line name" {
		t.Errorf("Control characters should collapse to spaces, got '%s'", template.FilterValue())
	}
}
