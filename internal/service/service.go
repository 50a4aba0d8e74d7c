package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/promptbrush/promptbrush/internal/artifact"
	"github.com/promptbrush/promptbrush/internal/config"
	apperrors "github.com/promptbrush/promptbrush/internal/errors"
	"github.com/promptbrush/promptbrush/internal/models"
	"github.com/promptbrush/promptbrush/internal/renderer"
	"github.com/promptbrush/promptbrush/internal/storage"
	"github.com/sahilm/fuzzy"
)

// Service provides business logic for template and gallery management
type Service struct {
	storage   *storage.Storage
	settings  *config.Settings
	persister *artifact.Persister
	templates []*models.Template // Cached templates for fast access
}

// NewService creates a new service instance
func NewService() (*Service, error) {
	rootPath, err := config.ResolveLibraryDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library directory: %w", err)
	}

	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	settings, err := config.NewSettings(store.GetBaseDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &Service{
		storage:   store,
		settings:  settings,
		persister: artifact.NewGalleryPersister(store.GalleryDir()),
	}, nil
}

// InitLibrary initializes a new template library
func (s *Service) InitLibrary() error {
	if err := s.storage.InitLibrary(); err != nil {
		return err
	}
	return s.settings.Save()
}

// GetBaseDir returns the library root directory
func (s *Service) GetBaseDir() string {
	return s.storage.GetBaseDir()
}

// Settings returns the library settings
func (s *Service) Settings() *config.Settings {
	return s.settings
}

// loadTemplates loads all templates into memory for fast access
func (s *Service) loadTemplates() error {
	templates, err := s.storage.ListTemplates()
	if err != nil {
		return err
	}
	s.templates = templates
	return nil
}

// ListTemplates returns all templates in the library
func (s *Service) ListTemplates() ([]*models.Template, error) {
	if len(s.templates) == 0 {
		if err := s.loadTemplates(); err != nil {
			return nil, apperrors.StorageError("list templates", err)
		}
	}
	return s.templates, nil
}

// Refresh rereads the library from disk, picking up templates added or
// removed outside this process
func (s *Service) Refresh() ([]*models.Template, error) {
	if err := s.loadTemplates(); err != nil {
		return nil, apperrors.StorageError("refresh templates", err)
	}
	return s.templates, nil
}

// GetTemplate retrieves a template by ID
func (s *Service) GetTemplate(id string) (*models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}

	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}

	return nil, apperrors.NotFoundError(fmt.Sprintf("template '%s'", id))
}

// SaveTemplate validates and persists a template, refreshing the cache
func (s *Service) SaveTemplate(template *models.Template) error {
	if template.ID == "" {
		return apperrors.InvalidInputError("template", "id must not be empty")
	}

	// Reject patterns with malformed placeholder syntax up front so a bad
	// template never reaches the library
	if _, err := renderer.Placeholders(template.Pattern); err != nil {
		return err
	}

	now := time.Now()
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}
	template.UpdatedAt = now

	if err := s.storage.SaveTemplate(template); err != nil {
		return apperrors.StorageError("save template", err)
	}

	return s.loadTemplates()
}

// DeleteTemplate removes a template by ID
func (s *Service) DeleteTemplate(id string) error {
	template, err := s.GetTemplate(id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteTemplate(template); err != nil {
		return apperrors.StorageError("delete template", err)
	}

	return s.loadTemplates()
}

// RenderTemplate fills a stored template's placeholders with vars
func (s *Service) RenderTemplate(id string, vars map[string]interface{}) (string, error) {
	template, err := s.GetTemplate(id)
	if err != nil {
		return "", err
	}

	r, err := renderer.New(template.Pattern)
	if err != nil {
		return "", err
	}

	return r.Render(vars)
}

// SearchTemplates performs a fuzzy search over template names, IDs,
// descriptions, and tags
func (s *Service) SearchTemplates(query string) ([]*models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return templates, nil
	}

	// Create searchable strings for each template
	var searchStrings []string
	for _, t := range templates {
		searchStr := fmt.Sprintf("%s %s %s %s",
			t.Name,
			t.Summary,
			t.ID,
			strings.Join(t.Tags, " "))
		searchStrings = append(searchStrings, searchStr)
	}

	// Perform fuzzy search
	matches := fuzzy.Find(query, searchStrings)

	// Build result list
	var results []*models.Template
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}

	return results, nil
}

// SaveImage decodes a base64 payload and writes it into the gallery (or to
// an explicit path), returning the resolved path of the written file
func (s *Service) SaveImage(payload, path, format string) (string, error) {
	if format == "" {
		format = s.settings.DefaultFormat
	}
	return s.persister.Save(payload, path, format)
}

// ListArtifacts returns all gallery artifacts, newest first
func (s *Service) ListArtifacts() ([]*models.Artifact, error) {
	artifacts, err := s.storage.ListArtifacts()
	if err != nil {
		return nil, apperrors.StorageError("list artifacts", err)
	}
	return artifacts, nil
}
