package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors, chosen once at startup based on the terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorError   lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
	ColorSurface   lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	if style := os.Getenv("GLAMOUR_STYLE"); style == "light" {
		setLightThemeColors()
		return
	} else if style == "dark" {
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
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")

	ColorSuccess = lipgloss.Color("10")
	ColorError = lipgloss.Color("9")

	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorSurface = lipgloss.Color("236")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")

	ColorSuccess = lipgloss.Color("22")
	ColorError = lipgloss.Color("160")

	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorSurface = lipgloss.Color("254")
}

// Component styles built after color initialization
var (
	StyleTitle lipgloss.Style
	StyleText  lipgloss.Style

	StyleFormLabel lipgloss.Style
	StyleFormHelp  lipgloss.Style
	StyleFocused   lipgloss.Style
	StyleRequired  lipgloss.Style

	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
)

func initializeStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleText = lipgloss.NewStyle().
		Foreground(ColorText)

	StyleFormLabel = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Italic(true).
		Padding(0, 3)

	StyleFocused = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	StyleRequired = lipgloss.NewStyle().
		Foreground(ColorError)

	StyleSuccess = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true).
		Padding(0, 1)

	StyleError = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true).
		Padding(0, 1)
}

func init() {
	initializeColors()
	initializeStyles()
}

// CreateHelp renders dim footer help text
func CreateHelp(text string) string {
	return lipgloss.NewStyle().Foreground(ColorTextDim).Render(text)
}
