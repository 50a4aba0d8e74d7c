package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/promptbrush/promptbrush/internal/clipboard"
	apperrors "github.com/promptbrush/promptbrush/internal/errors"
	"github.com/promptbrush/promptbrush/internal/models"
	"github.com/promptbrush/promptbrush/internal/renderer"
	"github.com/promptbrush/promptbrush/internal/service"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service      *service.Service
	errorHandler *apperrors.CLIErrorHandler
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{
		service:      svc,
		errorHandler: apperrors.NewCLIErrorHandler(os.Getenv("PROMPTBRUSH_VERBOSE") != ""),
	}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	var err error
	switch command {
	case "list", "ls":
		err = c.listTemplates(commandArgs)
	case "search":
		err = c.searchTemplates(commandArgs)
	case "get", "show":
		err = c.showTemplate(commandArgs)
	case "create", "new":
		err = c.createTemplate(commandArgs)
	case "delete", "rm":
		err = c.deleteTemplate(commandArgs)
	case "render":
		err = c.renderTemplate(commandArgs)
	case "save-image":
		err = c.saveImage(commandArgs)
	case "gallery":
		err = c.listGallery(commandArgs)
	case "help":
		return c.printUsage()
	default:
		err = apperrors.CommandNotFoundError(command).
			WithDetails("use 'help' for usage information")
	}

	if err != nil {
		return c.errorHandler.HandleError(err)
	}
	return nil
}

// listTemplates lists all templates
func (c *CLI) listTemplates(args []string) error {
	var format string
	var tag string

	// Parse flags
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--tag", "-t":
			if i+1 < len(args) {
				tag = args[i+1]
				i++
			}
		}
	}

	templates, err := c.service.ListTemplates()
	if err != nil {
		return err
	}

	if tag != "" {
		var filtered []*models.Template
		for _, t := range templates {
			for _, tg := range t.Tags {
				if tg == tag {
					filtered = append(filtered, t)
					break
				}
			}
		}
		templates = filtered
	}

	return c.formatOutput(templates, format)
}

// searchTemplates performs a fuzzy search over the library
func (c *CLI) searchTemplates(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("search", "requires a query")
	}

	var format string
	var queryParts []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		default:
			queryParts = append(queryParts, args[i])
		}
	}

	templates, err := c.service.SearchTemplates(strings.Join(queryParts, " "))
	if err != nil {
		return err
	}

	return c.formatOutput(templates, format)
}

// showTemplate displays a specific template
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("show", "requires a template ID")
	}

	var format string
	for i := 1; i < len(args); i++ {
		if (args[i] == "--format" || args[i] == "-f") && i+1 < len(args) {
			format = args[i+1]
			i++
		}
	}

	template, err := c.service.GetTemplate(args[0])
	if err != nil {
		return err
	}

	return c.formatSingleTemplate(template, format)
}

// createTemplate creates a new template
func (c *CLI) createTemplate(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("create", "requires a template ID")
	}

	id := args[0]
	var name, description, pattern string
	var tags []string
	fromStdin := false

	// Parse flags
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--name":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "--description":
			if i+1 < len(args) {
				description = args[i+1]
				i++
			}
		case "--pattern":
			if i+1 < len(args) {
				pattern = args[i+1]
				i++
			}
		case "--tags":
			if i+1 < len(args) {
				tags = strings.Split(args[i+1], ",")
				for j := range tags {
					tags[j] = strings.TrimSpace(tags[j])
				}
				i++
			}
		case "--stdin":
			fromStdin = true
		}
	}

	if fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read pattern from stdin: %w", err)
		}
		pattern = string(data)
	}

	template := &models.Template{
		ID:      id,
		Name:    name,
		Summary: description,
		Tags:    tags,
		Pattern: pattern,
	}

	if err := c.service.SaveTemplate(template); err != nil {
		return err
	}

	fmt.Printf("Created template: %s\n", id)
	return nil
}

// deleteTemplate deletes a template
func (c *CLI) deleteTemplate(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("delete", "requires a template ID")
	}

	if err := c.service.DeleteTemplate(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted template: %s\n", args[0])
	return nil
}

// renderTemplate renders a template with variables supplied as --var k=v
func (c *CLI) renderTemplate(args []string) error {
	if len(args) == 0 {
		return apperrors.InvalidCommandError("render", "requires a template ID")
	}

	id := args[0]
	vars := make(map[string]interface{})
	copyToClipboard := false
	var outputFile string

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--var", "-v":
			if i+1 < len(args) {
				key, value, ok := strings.Cut(args[i+1], "=")
				if !ok {
					return apperrors.InvalidCommandError("render",
						fmt.Sprintf("--var expects key=value, got '%s'", args[i+1]))
				}
				vars[key] = value
				i++
			}
		case "--copy", "-c":
			copyToClipboard = true
		case "--output", "-o":
			if i+1 < len(args) {
				outputFile = args[i+1]
				i++
			}
		}
	}

	result, err := c.service.RenderTemplate(id, vars)
	if err != nil {
		// A missing key is the most common failure; list what the
		// pattern expects to make the fix obvious
		if apperrors.HasCode(err, apperrors.ErrCodeMissingKey) {
			if template, getErr := c.service.GetTemplate(id); getErr == nil {
				if names, phErr := renderer.Placeholders(template.Pattern); phErr == nil {
					return apperrors.GetAppError(err).
						WithDetails("pattern placeholders: " + strings.Join(names, ", "))
				}
			}
		}
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(result), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Wrote rendered output to %s\n", outputFile)
		return nil
	}

	if copyToClipboard {
		msg, err := clipboard.CopyWithFallback(result)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	}

	fmt.Println(result)
	return nil
}

// saveImage decodes a base64 payload and persists it to the gallery or an
// explicit path
func (c *CLI) saveImage(args []string) error {
	var payload, payloadFile, outputPath, format string
	fromStdin := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--file":
			if i+1 < len(args) {
				payloadFile = args[i+1]
				i++
			}
		case "--stdin":
			fromStdin = true
		case "--output", "-o":
			if i+1 < len(args) {
				outputPath = args[i+1]
				i++
			}
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		default:
			if payload == "" && !strings.HasPrefix(args[i], "-") {
				payload = args[i]
			}
		}
	}

	if payloadFile != "" {
		data, err := os.ReadFile(payloadFile)
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
		payload = string(data)
	} else if fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read payload from stdin: %w", err)
		}
		payload = string(data)
	}

	if payload == "" {
		return apperrors.InvalidCommandError("save-image",
			"requires a base64 payload (argument, --file, or --stdin)")
	}

	resolved, err := c.service.SaveImage(payload, outputPath, format)
	if err != nil {
		return err
	}

	fmt.Printf("Saved image: %s\n", resolved)
	return nil
}

// listGallery lists gallery artifacts
func (c *CLI) listGallery(args []string) error {
	var format string
	for i := 0; i < len(args); i++ {
		if (args[i] == "--format" || args[i] == "-f") && i+1 < len(args) {
			format = args[i+1]
			i++
		}
	}

	artifacts, err := c.service.ListArtifacts()
	if err != nil {
		return err
	}

	if format == "json" {
		return printJSON(artifacts)
	}

	if len(artifacts) == 0 {
		fmt.Println("Gallery is empty")
		return nil
	}

	for _, a := range artifacts {
		fmt.Printf("%-40s %s\n", a.FileName, a.Description())
	}
	return nil
}

// formatOutput formats a list of templates as text or JSON
func (c *CLI) formatOutput(templates []*models.Template, format string) error {
	if format == "json" {
		return printJSON(templates)
	}

	if len(templates) == 0 {
		fmt.Println("No templates found")
		return nil
	}

	for _, t := range templates {
		line := t.ID
		if t.Name != "" {
			line = fmt.Sprintf("%-24s %s", t.ID, t.Name)
		}
		if len(t.Tags) > 0 {
			line += fmt.Sprintf("  [%s]", strings.Join(t.Tags, ", "))
		}
		fmt.Println(line)
	}
	return nil
}

// formatSingleTemplate formats one template as text or JSON
func (c *CLI) formatSingleTemplate(template *models.Template, format string) error {
	if format == "json" {
		return printJSON(template)
	}

	fmt.Printf("ID:          %s\n", template.ID)
	if template.Name != "" {
		fmt.Printf("Name:        %s\n", template.Name)
	}
	if template.Summary != "" {
		fmt.Printf("Description: %s\n", template.Summary)
	}
	if len(template.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(template.Tags, ", "))
	}
	if names, err := renderer.Placeholders(template.Pattern); err == nil && len(names) > 0 {
		fmt.Printf("Placeholders: %s\n", strings.Join(names, ", "))
	}
	fmt.Printf("\n%s\n", template.Pattern)
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printUsage prints CLI usage information
func (c *CLI) printUsage() error {
	fmt.Print(`promptbrush CLI commands:

TEMPLATES:
    list, ls [--format json] [--tag <tag>]      List templates
    search <query> [--format json]              Fuzzy search templates
    show <id> [--format json]                   Show a template
    create <id> [--name <name>] [--description <desc>] [--tags a,b]
              [--pattern <text> | --stdin]      Create a template
    delete <id>                                 Delete a template
    render <id> --var key=value ...
              [--copy] [--output <file>]        Render a template

GALLERY:
    save-image <payload> [--file <path>] [--stdin]
              [--output <path>] [--format <fmt>]  Save a base64 image
    gallery [--format json]                     List gallery artifacts

Patterns use {name} placeholders; {{ and }} are literal braces.
`)
	return nil
}
