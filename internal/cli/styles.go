// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4D96FF")
	// CriticalColor marks the Critical / Urgent segment.
	CriticalColor = lipgloss.Color("#FF6B6B")
	// ModerateColor marks the Moderate / At-Risk segment.
	ModerateColor = lipgloss.Color("#FFA94D")
	// OnTrackColor marks the On Track / Low Risk segment.
	OnTrackColor = lipgloss.Color("#51CF66")
	// UnknownColor marks values that could not be classified.
	UnknownColor = lipgloss.Color("#868E96")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// CriticalStyle formats Critical segment text.
	CriticalStyle = lipgloss.NewStyle().
			Foreground(CriticalColor)

	// ModerateStyle formats Moderate segment text.
	ModerateStyle = lipgloss.NewStyle().
			Foreground(ModerateColor)

	// OnTrackStyle formats On Track segment text.
	OnTrackStyle = lipgloss.NewStyle().
			Foreground(OnTrackColor)

	// UnknownStyle formats unknown values.
	UnknownStyle = lipgloss.NewStyle().
			Foreground(UnknownColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	CohortIcon   = "🎓"
	ChartIcon    = "📊"
	WorklistIcon = "📋"
	CriticalIcon = "🔴"
	ModerateIcon = "🟠"
	OnTrackIcon  = "🟢"
	UnknownIcon  = "⚪"
)

// SegmentStyle returns the color style for a risk segment.
func SegmentStyle(seg model.Segment) lipgloss.Style {
	switch seg {
	case model.SegmentCritical:
		return CriticalStyle
	case model.SegmentModerate:
		return ModerateStyle
	case model.SegmentOnTrack:
		return OnTrackStyle
	default:
		return UnknownStyle
	}
}

// SegmentIcon returns the colored dot for a risk segment.
func SegmentIcon(seg model.Segment) string {
	switch seg {
	case model.SegmentCritical:
		return CriticalIcon
	case model.SegmentModerate:
		return ModerateIcon
	case model.SegmentOnTrack:
		return OnTrackIcon
	default:
		return UnknownIcon
	}
}

// FormatSegment renders a segment's display label in its color with icon.
func FormatSegment(seg model.Segment) string {
	return SegmentIcon(seg) + " " + SegmentStyle(seg).Render(seg.Label())
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return OnTrackStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the cohort icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CohortIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// StyleTitle formats text as a title.
func StyleTitle(text string) string {
	return TitleStyle.Render(text)
}

// StyleSubtle formats text as de-emphasized detail.
func StyleSubtle(text string) string {
	return SubtleStyle.Render(text)
}
