// Package themes defines the visual styles for the dashboard TUI.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// Theme defines the visual style for the TUI. Segment colors carry the risk
// palette; everything else is chrome.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Box         lipgloss.Style
	BorderedBox lipgloss.Style
	RoundedBox  lipgloss.Style
	StatusError lipgloss.Style
	Primary     lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	MutedColor  lipgloss.Color
	Critical    lipgloss.Color
	Moderate    lipgloss.Color
	OnTrack     lipgloss.Color
	Unknown     lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary:    lipgloss.Color("#4D96FF"),
	Border:     lipgloss.Color("#404040"),
	Foreground: lipgloss.Color("#fafafa"),
	MutedColor: lipgloss.Color("#737373"),
	Critical:   lipgloss.Color("#FF6B6B"),
	Moderate:   lipgloss.Color("#FFA94D"),
	OnTrack:    lipgloss.Color("#51CF66"),
	Unknown:    lipgloss.Color("#868E96"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#4D96FF")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4D96FF")).
		Underline(true).
		Padding(0, 1),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Padding(0, 1),
	Box: lipgloss.NewStyle().
		Padding(1, 2),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
}

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = Theme{
	Primary:    lipgloss.Color("#89b4fa"),
	Border:     lipgloss.Color("#45475a"),
	Foreground: lipgloss.Color("#cdd6f4"),
	MutedColor: lipgloss.Color("#6c7086"),
	Critical:   lipgloss.Color("#f38ba8"),
	Moderate:   lipgloss.Color("#fab387"),
	OnTrack:    lipgloss.Color("#a6e3a1"),
	Unknown:    lipgloss.Color("#6c7086"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#cdd6f4")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#cdd6f4")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#89b4fa")).
		Foreground(lipgloss.Color("#1e1e2e")).
		Bold(true),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#89b4fa")).
		Underline(true).
		Padding(0, 1),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")).
		Padding(0, 1),
	Box: lipgloss.NewStyle().
		Padding(1, 2),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#45475a")).
		Padding(1, 2),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#45475a")).
		Padding(1, 2),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f38ba8")).
		Bold(true),
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// SegmentColor returns the theme color for a risk segment.
func (t Theme) SegmentColor(seg model.Segment) lipgloss.Color {
	switch seg {
	case model.SegmentCritical:
		return t.Critical
	case model.SegmentModerate:
		return t.Moderate
	case model.SegmentOnTrack:
		return t.OnTrack
	default:
		return t.Unknown
	}
}

// SegmentStyle returns a style rendering text in the segment's color.
func (t Theme) SegmentStyle(seg model.Segment) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.SegmentColor(seg))
}

// SegmentIcons maps segments to their status dots.
var SegmentIcons = map[model.Segment]string{
	model.SegmentCritical: "🔴",
	model.SegmentModerate: "🟠",
	model.SegmentOnTrack:  "🟢",
	model.SegmentUnknown:  "⚪",
}

// GetSegmentIcon returns the status dot for a segment.
func GetSegmentIcon(seg model.Segment) string {
	if icon, ok := SegmentIcons[seg]; ok {
		return icon
	}
	return "⚪"
}
