package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/promptbrush/promptbrush/internal/clipboard"
	"github.com/promptbrush/promptbrush/internal/models"
	"github.com/promptbrush/promptbrush/internal/service"
)

// createGlamourRenderer creates a glamour renderer with contrast handling
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	// Check for environment variable override first
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	if lipgloss.HasDarkBackground() {
		styleOption = glamour.WithStandardStyle("dark")
	} else {
		styleOption = glamour.WithStandardStyle("light")
	}
	if profile != termenv.TrueColor && profile != termenv.ANSI256 {
		styleOption = glamour.WithAutoStyle()
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// Commands for async operations
type loadCompleteMsg struct {
	templates []*models.Template
	artifacts []*models.Artifact
	err       error
}

// loadLibraryCmd reloads templates and gallery artifacts from disk
func loadLibraryCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		templates, templateErr := svc.Refresh()
		if templateErr != nil {
			templates = []*models.Template{}
		}

		artifacts, artifactErr := svc.ListArtifacts()
		if artifactErr != nil {
			artifacts = []*models.Artifact{}
		}

		err := templateErr
		if err == nil {
			err = artifactErr
		}

		return loadCompleteMsg{
			templates: templates,
			artifacts: artifacts,
			err:       err,
		}
	}
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewLibrary ViewMode = iota
	ViewGallery
	ViewTemplateDetail
)

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// UI components
	templateList list.Model
	galleryList  list.Model
	viewport     viewport.Model
	help         help.Model
	keys         KeyMap

	// Data
	templates        []*models.Template
	artifacts        []*models.Artifact
	loading          bool
	selectedTemplate *models.Template

	// Rendered content
	glamourRenderer *glamour.TermRenderer

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg string

	// Error state
	err error
}

// KeyMap defines all key bindings
type KeyMap struct {
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Gallery key.Binding
	Library key.Binding
	Copy    key.Binding
	Refresh key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Gallery, k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Back, k.Copy},
		{k.Library, k.Gallery, k.Refresh},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view template"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Gallery: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "gallery"),
		),
		Library: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "templates"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy pattern/path"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
	}
}

// NewModel creates the initial TUI model
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()
	initializeStyles()

	keys := defaultKeyMap()

	templateDelegate := list.NewDefaultDelegate()
	templateList := list.New([]list.Item{}, templateDelegate, 0, 0)
	templateList.Title = "Prompt Templates"
	templateList.SetShowHelp(false)

	galleryDelegate := list.NewDefaultDelegate()
	galleryList := list.New([]list.Item{}, galleryDelegate, 0, 0)
	galleryList.Title = "Gallery"
	galleryList.SetShowHelp(false)

	glamourRenderer, err := createGlamourRenderer(80)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Model{
		service:         svc,
		viewMode:        ViewLibrary,
		templateList:    templateList,
		galleryList:     galleryList,
		viewport:        viewport.New(0, 0),
		help:            help.New(),
		keys:            keys,
		loading:         true,
		glamourRenderer: glamourRenderer,
	}, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return loadLibraryCmd(m.service)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := m.height - 4
		if listHeight < 1 {
			listHeight = 1
		}
		m.templateList.SetSize(m.width, listHeight)
		m.galleryList.SetSize(m.width, listHeight)
		m.viewport.Width = m.width - 4
		m.viewport.Height = listHeight
		return m, nil

	case loadCompleteMsg:
		m.loading = false
		m.err = msg.err
		m.templates = msg.templates
		m.artifacts = msg.artifacts

		templateItems := make([]list.Item, len(msg.templates))
		for i, t := range msg.templates {
			templateItems[i] = *t
		}
		m.templateList.SetItems(templateItems)

		galleryItems := make([]list.Item, len(msg.artifacts))
		for i, a := range msg.artifacts {
			galleryItems[i] = *a
		}
		m.galleryList.SetItems(galleryItems)
		return m, nil

	case tea.KeyMsg:
		// Don't intercept keys while the list filter input is active
		if m.viewMode == ViewLibrary && m.templateList.FilterState() == list.Filtering {
			break
		}
		if m.viewMode == ViewGallery && m.galleryList.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Gallery):
			m.viewMode = ViewGallery
			m.statusMsg = ""
			return m, nil

		case key.Matches(msg, m.keys.Library):
			m.viewMode = ViewLibrary
			m.statusMsg = ""
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, loadLibraryCmd(m.service)

		case key.Matches(msg, m.keys.Back):
			if m.viewMode == ViewTemplateDetail {
				m.viewMode = ViewLibrary
				m.selectedTemplate = nil
			}
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if m.viewMode == ViewLibrary {
				if item, ok := m.templateList.SelectedItem().(models.Template); ok {
					m.selectedTemplate = &item
					m.showTemplateDetail(&item)
					m.viewMode = ViewTemplateDetail
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			return m, m.copySelection()
		}
	}

	var cmd tea.Cmd
	switch m.viewMode {
	case ViewLibrary:
		m.templateList, cmd = m.templateList.Update(msg)
	case ViewGallery:
		m.galleryList, cmd = m.galleryList.Update(msg)
	case ViewTemplateDetail:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// showTemplateDetail renders a template into the detail viewport
func (m *Model) showTemplateDetail(template *models.Template) {
	markdown := fmt.Sprintf("# %s\n\n", template.Title())
	if template.Summary != "" {
		markdown += template.Summary + "\n\n"
	}
	markdown += "```\n" + template.Pattern + "\n```\n"

	rendered, err := m.glamourRenderer.Render(markdown)
	if err != nil {
		rendered = template.Pattern
	}

	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// copySelection copies the selected template pattern or artifact path
func (m *Model) copySelection() tea.Cmd {
	var text string
	switch m.viewMode {
	case ViewLibrary:
		if item, ok := m.templateList.SelectedItem().(models.Template); ok {
			text = item.Pattern
		}
	case ViewGallery:
		if item, ok := m.galleryList.SelectedItem().(models.Artifact); ok {
			text = item.Path
		}
	case ViewTemplateDetail:
		if m.selectedTemplate != nil {
			text = m.selectedTemplate.Pattern
		}
	}

	if text == "" {
		return nil
	}

	msg, err := clipboard.CopyWithFallback(text)
	if err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
	} else {
		m.statusMsg = statusStyle.Render(msg)
	}
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.loading {
		return titleStyle.Render("promptbrush") + "\n\n  Loading library..."
	}

	var body string
	switch m.viewMode {
	case ViewLibrary:
		body = m.templateList.View()
	case ViewGallery:
		body = m.galleryList.View()
	case ViewTemplateDetail:
		body = detailStyle.Render(m.viewport.View())
	}

	status := m.statusMsg
	if m.err != nil {
		status = errorStyle.Render(m.err.Error())
	}

	helpView := helpBarStyle.Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, body, status, helpView)
}
