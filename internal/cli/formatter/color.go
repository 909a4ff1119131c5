package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#8ec07c")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// groupPalette maps the color tokens stored on group definitions to
// concrete styles. Unknown tokens fall back to the plain foreground.
var groupPalette = map[string]lipgloss.Style{
	"green":  StyleGreen,
	"yellow": StyleYellow,
	"red":    StyleRed,
	"blue":   StyleBlue,
	"purple": StylePurple,
	"aqua":   lipgloss.NewStyle().Foreground(ColorAqua),
}

// GroupStyle resolves a group's color token to a lipgloss style.
func GroupStyle(token string) lipgloss.Style {
	if s, ok := groupPalette[token]; ok {
		return s
	}
	return StyleFg
}

// CapacityStyle colors a remaining-capacity figure: red when negative,
// yellow at or below the alert threshold, green otherwise.
func CapacityStyle(remaining, threshold int) lipgloss.Style {
	switch {
	case remaining < 0:
		return StyleRed
	case remaining <= threshold:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
