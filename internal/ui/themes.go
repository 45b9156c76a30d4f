package ui

import (
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is selected when no theme is configured.
const DefaultThemeName = "dark"

// noColorThemeName is forced by -no-color and NO_COLOR.
const noColorThemeName = "none"

// Theme is a color scheme. The ANSI fields color the plain text output;
// Palette styles headings and status labels through lipgloss.
type Theme struct {
	Name string

	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string

	Palette Palette
}

// Palette holds the lipgloss colors of a theme.
type Palette struct {
	Text    lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

// ansi256 returns the escape selecting foreground color n of the 256-color
// table.
func ansi256(n string) string { return "\033[38;5;" + n + "m" }

// styled fills the attribute codes shared by every colored theme.
func styled(t Theme) Theme {
	t.Bold, t.Underline, t.Reset = "\033[1m", "\033[4m", "\033[0m"
	return t
}

// themes is the registry behind -theme, in the order -help lists it.
var themes = []Theme{
	styled(Theme{
		Name:    "dark",
		Primary: ansi256("39"), Secondary: ansi256("245"), Success: ansi256("82"),
		Warning: ansi256("220"), Error: ansi256("196"), Info: ansi256("141"),
		Palette: Palette{
			Text: lipgloss.Color("#E0E0E0"), Accent: lipgloss.Color("#7AA2F7"),
			Success: lipgloss.Color("#9ECE6A"), Warning: lipgloss.Color("#E0AF68"),
			Error: lipgloss.Color("#F7768E"), Dim: lipgloss.Color("#666666"),
		},
	}),
	styled(Theme{
		Name:    "light",
		Primary: ansi256("27"), Secondary: ansi256("240"), Success: ansi256("28"),
		Warning: ansi256("130"), Error: ansi256("124"), Info: ansi256("54"),
		Palette: Palette{
			Text: lipgloss.Color("#202020"), Accent: lipgloss.Color("#1F4FBF"),
			Success: lipgloss.Color("#2E7D32"), Warning: lipgloss.Color("#B35900"),
			Error: lipgloss.Color("#B00020"), Dim: lipgloss.Color("#808080"),
		},
	}),
	styled(Theme{
		Name:    "orange",
		Primary: ansi256("208"), Secondary: ansi256("245"), Success: ansi256("82"),
		Warning: ansi256("214"), Error: ansi256("196"), Info: ansi256("69"),
		Palette: Palette{
			Text: lipgloss.Color("#E0E0E0"), Accent: lipgloss.Color("#FF8C00"),
			Success: lipgloss.Color("#9ECE6A"), Warning: lipgloss.Color("#FFB347"),
			Error: lipgloss.Color("#FF4444"), Dim: lipgloss.Color("#666666"),
		},
	}),
	{
		Name: noColorThemeName,
		Palette: Palette{
			Text: lipgloss.NoColor{}, Accent: lipgloss.NoColor{}, Success: lipgloss.NoColor{},
			Warning: lipgloss.NoColor{}, Error: lipgloss.NoColor{}, Dim: lipgloss.NoColor{},
		},
	},
}

var (
	themeMutex   sync.RWMutex
	currentTheme = themes[0]
)

// ThemeNames lists the names accepted by LookupTheme.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme returns the registered theme called name.
func LookupTheme(name string) (Theme, bool) {
	i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name })
	if i < 0 {
		return Theme{}, false
	}
	return themes[i], true
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentPalette returns the lipgloss palette of the active theme.
func GetCurrentPalette() Palette {
	return GetCurrentTheme().Palette
}

// SetCurrentTheme activates t. Tests use it to restore the previous theme.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme activates the theme called name, or the default theme when the
// name is empty or unknown. noColor and a set NO_COLOR variable
// (https://no-color.org/) both force the colorless theme.
func InitTheme(name string, noColor bool) {
	if _, set := lookupNoColor(); set || noColor {
		name = noColorThemeName
	}
	t, ok := LookupTheme(name)
	if !ok {
		t, _ = LookupTheme(DefaultThemeName)
	}
	SetCurrentTheme(t)
}

func lookupNoColor() (string, bool) {
	return os.LookupEnv("NO_COLOR")
}
