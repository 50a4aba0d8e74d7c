package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Design system colors, adaptive based on terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorError   lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBorder    lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	if os.Getenv("GLAMOUR_STYLE") == "light" {
		setLightThemeColors()
		return
	}
	if os.Getenv("GLAMOUR_STYLE") == "dark" {
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")   // Bright magenta
	ColorSecondary = lipgloss.Color("33")  // Bright cyan
	ColorAccent = lipgloss.Color("214")    // Bright orange
	ColorSuccess = lipgloss.Color("10")    // Bright green
	ColorError = lipgloss.Color("9")       // Bright red
	ColorText = lipgloss.Color("252")      // Near white
	ColorTextMuted = lipgloss.Color("244") // Light gray
	ColorBorder = lipgloss.Color("238")    // Dark gray
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")  // Darker magenta
	ColorSecondary = lipgloss.Color("24") // Darker cyan
	ColorAccent = lipgloss.Color("130")   // Darker orange
	ColorSuccess = lipgloss.Color("22")   // Dark green
	ColorError = lipgloss.Color("160")    // Dark red
	ColorText = lipgloss.Color("235")     // Near black
	ColorTextMuted = lipgloss.Color("243")
	ColorBorder = lipgloss.Color("250")
}

// Shared styles, built after color initialization
var (
	titleStyle   lipgloss.Style
	statusStyle  lipgloss.Style
	errorStyle   lipgloss.Style
	detailStyle  lipgloss.Style
	helpBarStyle lipgloss.Style
)

// initializeStyles builds the shared styles from the active color set
func initializeStyles() {
	titleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Padding(0, 1)

	detailStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	helpBarStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
}
