package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/promptbrush/promptbrush/internal/cli"
	"github.com/promptbrush/promptbrush/internal/service"
	"github.com/promptbrush/promptbrush/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`promptbrush - Terminal-based prompt templating and image gallery

USAGE:
    promptbrush [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize a new library

COMMANDS:
    (no command)       Start interactive TUI mode
    list, ls           List all templates
    search <query>     Fuzzy search templates
    get, show <id>     Show a specific template
    create, new <id>   Create a new template
    delete, rm <id>    Delete a template
    render <id>        Render a template with variables
    save-image         Decode a base64 payload and save it
    gallery            List gallery artifacts
    help               Show CLI command help

EXAMPLES:
    promptbrush                                      # Start interactive mode
    promptbrush --init                               # Initialize new library
    promptbrush create portrait --pattern "A {style} portrait of {subject}"
    promptbrush render portrait --var style=baroque --var subject=a\ fox
    promptbrush render portrait --var style=noir --var subject=a\ cat --copy
    promptbrush save-image --file payload.b64 --output art/fox --format png
    promptbrush gallery --format json

STORAGE:
    Default directory: ~/.promptbrush
    Override with: PROMPTBRUSH_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("promptbrush version %s\n", version)
		os.Exit(0)
	}

	// Initialize service with file storage
	svc, err := service.NewService()
	if err != nil {
		fmt.Println(err)
		return
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Println("Error initializing library:", err)
			return
		}
		fmt.Println("Initialized promptbrush library")
		return
	}

	// Check if we have command line arguments for CLI mode
	args := flag.Args()
	if len(args) > 0 {
		// CLI mode - execute command and exit
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Println(err)
		return
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
}
