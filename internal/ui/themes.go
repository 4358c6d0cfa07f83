package ui

import "github.com/charmbracelet/lipgloss"

// Theme represents a color theme for the editor
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
}

// buildTheme creates a theme from light/dark color pairs
func buildTheme(name string, primary, secondary, accent, success, errorColor, border, muted, highlight [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:    lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Highlight: lipgloss.AdaptiveColor{Light: highlight[0], Dark: highlight[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7C3AED", "#A855F7"},
		[2]string{"#059669", "#10B981"}, [2]string{"#DC2626", "#EF4444"}, [2]string{"#D1D5DB", "#374151"},
		[2]string{"#6B7280", "#9CA3AF"}, [2]string{"#FEF3C7", "#1F2937"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC0000", "#FF4444"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#666666", "#BBBBBB"}, [2]string{"#FFFF00", "#444444"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C53030", "#FC8181"}, [2]string{"#E2E8F0", "#2D3748"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#F7FAFC", "#2D3748"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetThemeByName sets the active theme by name and reports whether the
// name is known.
func SetThemeByName(name string) bool {
	switch name {
	case "default":
		currentTheme = DefaultTheme
	case "high-contrast":
		currentTheme = HighContrastTheme
	case "minimal":
		currentTheme = MinimalTheme
	default:
		return false
	}
	return true
}

// AvailableThemes returns the theme names SetThemeByName accepts
func AvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// styles holds the concrete lipgloss styles derived from a theme
type styles struct {
	theme Theme

	modeTag    lipgloss.Style
	statusFile lipgloss.Style
	statusInfo lipgloss.Style
	statusNote lipgloss.Style

	paneTitle   lipgloss.Style
	previewPane lipgloss.Style
	screenName  lipgloss.Style
	kind        lipgloss.Style
	value       lipgloss.Style
	muted       lipgloss.Style

	diagTitle lipgloss.Style
	diagLine  lipgloss.Style

	cursorLine lipgloss.Style
	lineNumber lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		theme: theme,

		modeTag: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}).
			Padding(0, 1).
			Bold(true),
		statusFile: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		statusInfo: lipgloss.NewStyle().
			Foreground(theme.Muted),
		statusNote: lipgloss.NewStyle().
			Foreground(theme.Success),

		paneTitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),
		previewPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		screenName: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		kind: lipgloss.NewStyle().
			Foreground(theme.Secondary),
		value: lipgloss.NewStyle().
			Foreground(theme.Success),
		muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		diagTitle: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),
		diagLine: lipgloss.NewStyle().
			Foreground(theme.Error),

		cursorLine: lipgloss.NewStyle().
			Background(theme.Highlight),
		lineNumber: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}
