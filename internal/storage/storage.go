package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promptbrush/promptbrush/internal/models"
	"gopkg.in/yaml.v3"
)

// Storage handles all file system operations for templates and the gallery
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance rooted at rootPath, defaulting
// to ~/.promptbrush
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".promptbrush")
	}

	return &Storage{rootPath: rootPath}, nil
}

// InitLibrary creates the directory structure for a template library
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, "gallery"),
		filepath.Join(s.rootPath, ".promptbrush"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// GalleryDir returns the absolute path of the gallery directory
func (s *Storage) GalleryDir() string {
	return filepath.Join(s.rootPath, "gallery")
}

// SaveTemplate saves a template to a markdown file with YAML frontmatter
func (s *Storage) SaveTemplate(template *models.Template) error {
	if template.FilePath == "" {
		template.FilePath = filepath.Join("templates", template.ID+".md")
	}
	fullPath := filepath.Join(s.rootPath, template.FilePath)

	// Ensure directory exists
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := serializeTemplate(template)
	if err != nil {
		return fmt.Errorf("failed to serialize template: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}

	return nil
}

// LoadTemplate loads a template from a markdown file
func (s *Storage) LoadTemplate(path string) (*models.Template, error) {
	fullPath := filepath.Join(s.rootPath, path)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	template, err := parseTemplateFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	template.FilePath = path
	return template, nil
}

// DeleteTemplate deletes a template file
func (s *Storage) DeleteTemplate(template *models.Template) error {
	fullPath := filepath.Join(s.rootPath, template.FilePath)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("template file does not exist: %s", fullPath)
	}

	return os.Remove(fullPath)
}

// ListTemplates returns all templates in the library
func (s *Storage) ListTemplates() ([]*models.Template, error) {
	templatesDir := filepath.Join(s.rootPath, "templates")
	if _, err := os.Stat(templatesDir); os.IsNotExist(err) {
		return []*models.Template{}, nil
	}

	var templates []*models.Template
	err := filepath.Walk(templatesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			relPath, _ := filepath.Rel(s.rootPath, path)
			template, err := s.LoadTemplate(relPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load template %s: %v\n", relPath, err)
				return nil
			}
			templates = append(templates, template)
		}

		return nil
	})

	return templates, err
}

// ListArtifacts returns all image files in the gallery, newest first
func (s *Storage) ListArtifacts() ([]*models.Artifact, error) {
	galleryDir := s.GalleryDir()
	if _, err := os.Stat(galleryDir); os.IsNotExist(err) {
		return []*models.Artifact{}, nil
	}

	entries, err := os.ReadDir(galleryDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery directory: %w", err)
	}

	var artifacts []*models.Artifact
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to stat artifact %s: %v\n", entry.Name(), err)
			continue
		}

		artifacts = append(artifacts, &models.Artifact{
			FileName:  entry.Name(),
			Path:      filepath.Join(galleryDir, entry.Name()),
			Format:    strings.TrimPrefix(filepath.Ext(entry.Name()), "."),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
	})

	return artifacts, nil
}

// Helper functions

func parseTemplateFile(content []byte) (*models.Template, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	// Check for frontmatter delimiter
	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	// Read frontmatter
	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	frontmatter := strings.Join(frontmatterLines, "\n")
	var template models.Template
	if err := yaml.Unmarshal([]byte(frontmatter), &template); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Read remaining content
	var patternLines []string
	for scanner.Scan() {
		patternLines = append(patternLines, scanner.Text())
	}
	// serializeTemplate writes exactly one blank separator line after the
	// frontmatter; strip only that so patterns with intentional leading
	// indentation survive the round trip
	template.Pattern = strings.Join(patternLines, "\n")
	template.Pattern = strings.TrimPrefix(template.Pattern, "\n")

	return &template, nil
}

// serializeTemplate converts a template to YAML frontmatter + pattern content
func serializeTemplate(template *models.Template) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(template); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n")

	if template.Pattern != "" {
		buf.WriteString("\n")
		buf.WriteString(template.Pattern)
		if !strings.HasSuffix(template.Pattern, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
