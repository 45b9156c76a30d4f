package ui

import "github.com/charmbracelet/lipgloss"

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color of the active theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the info color of the active theme.
func ColorCyan() string { return GetCurrentTheme().Info }

// ColorGrey returns the secondary color of the active theme.
func ColorGrey() string { return GetCurrentTheme().Secondary }

func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// Heading renders a section title, bold and underlined in the accent color.
func Heading(title string) string {
	p := GetCurrentPalette()
	style := lipgloss.NewStyle().Foreground(p.Accent)
	if GetCurrentTheme().Name != noColorThemeName {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(title)
}

// Status renders a short pass or fail label.
func Status(label string, ok bool) string {
	p := GetCurrentPalette()
	color := p.Success
	if !ok {
		color = p.Error
	}
	return lipgloss.NewStyle().Foreground(color).Render(label)
}

// Dim renders secondary text such as hints.
func Dim(text string) string {
	return lipgloss.NewStyle().Foreground(GetCurrentPalette().Dim).Render(text)
}
