package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/techania/learner-segmentation-dashboard/internal/segment"
	"github.com/techania/learner-segmentation-dashboard/internal/tui/themes"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var body string
	switch m.tab {
	case TabOverview:
		body = m.renderOverview()
	case TabWorklist:
		body = m.renderWorklist()
	case TabSegments:
		body = m.renderSegments()
	case TabBreakdown:
		body = m.renderBreakdown()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

// renderHeader shows the report identity and the tab bar.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render("🎓 Learner Risk Dashboard")
	subtitle := m.theme.Subtitle.Render(fmt.Sprintf(
		"As of %s · %d learners · %d on worklist",
		m.snapshot.ReferenceDate.Format("2006-01-02"),
		m.snapshot.Summary.Total,
		len(m.snapshot.Worklist),
	))

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = m.theme.TabActive.Render(name)
		} else {
			tabs[i] = m.theme.TabInactive.Render(name)
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)
}

// renderOverview shows the headline counts with share bars.
func (m Model) renderOverview() string {
	lines := make([]string, 0, len(m.snapshot.Summary.Segments)+2)

	for _, stat := range m.snapshot.Summary.Segments {
		bar := m.shareBars[stat.Segment]
		label := m.theme.SegmentStyle(stat.Segment).Render(fmt.Sprintf("%-22s", stat.Segment.Label()))
		line := fmt.Sprintf("%s %s %3d  %s",
			themes.GetSegmentIcon(stat.Segment),
			label,
			stat.Count,
			bar.ViewAs(stat.Share/100),
		)
		lines = append(lines, line)
	}

	if note := m.unknownNote(); note != "" {
		lines = append(lines, "", m.theme.Muted.Render(note))
	}

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// unknownNote summarizes how many learners had unreadable values.
func (m Model) unknownNote() string {
	parts := make([]string, 0, 3)
	if m.breakdown.UnknownDays > 0 {
		parts = append(parts, fmt.Sprintf("%d without a readable last-seen date", m.breakdown.UnknownDays))
	}
	if m.breakdown.UnknownProgress > 0 {
		parts = append(parts, fmt.Sprintf("%d without readable progress", m.breakdown.UnknownProgress))
	}
	if m.breakdown.UnknownGrade > 0 {
		parts = append(parts, fmt.Sprintf("%d without a readable grade", m.breakdown.UnknownGrade))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Unreadable data: " + strings.Join(parts, ", ")
}

// renderWorklist shows the priority table with the filter line.
func (m Model) renderWorklist() string {
	var filterLine string
	switch {
	case m.filtering:
		filterLine = m.filter.View()
	case m.filter.Value() != "":
		filterLine = m.theme.Muted.Render(fmt.Sprintf("filter: %s (Esc clears)", m.filter.Value()))
	default:
		filterLine = m.theme.Muted.Render("press / to filter")
	}

	count := m.theme.Muted.Render(fmt.Sprintf("%d of %d shown",
		len(m.worklist.Rows()), len(m.snapshot.Worklist)))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		filterLine,
		m.worklist.View(),
		count,
	)
}

// renderSegments shows one partition at a time with its intervention plan.
func (m Model) renderSegments() string {
	if len(m.snapshot.Partitions) == 0 {
		return m.theme.Muted.Render("no data")
	}

	partition := m.snapshot.Partitions[m.segmentIndex]
	plan := segment.PlanFor(partition.Segment)

	heading := fmt.Sprintf("%s %s  %s",
		themes.GetSegmentIcon(partition.Segment),
		m.theme.SegmentStyle(partition.Segment).Bold(true).Render(partition.Segment.Label()),
		m.theme.Muted.Render(fmt.Sprintf("(%d/%d · ←/→ to cycle)", m.segmentIndex+1, len(m.snapshot.Partitions))),
	)

	sections := []string{
		heading,
		m.theme.Bold.Render("Who: ") + m.theme.Normal.Render(plan.Who),
	}
	for _, action := range plan.Actions {
		sections = append(sections, m.theme.Normal.Render("  • "+action))
	}

	if m.engine != nil {
		for _, line := range m.engine.CriteriaFor(partition.Segment) {
			sections = append(sections, m.theme.Muted.Render("  › "+line))
		}
	}

	sections = append(sections, m.segments.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBreakdown shows the dimension drilldowns.
func (m Model) renderBreakdown() string {
	numeric := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderBuckets("Days since last seen", m.breakdown.EngagementDays, m.breakdown.UnknownDays),
		m.renderBuckets("Progress (%)", m.breakdown.Progress, m.breakdown.UnknownProgress),
		m.renderBuckets("Average grade (%)", m.breakdown.AverageGrade, m.breakdown.UnknownGrade),
	)

	categorical := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderValueCounts("Reported barriers", m.breakdown.Barriers),
		m.renderValueCounts("Training stage", m.breakdown.TrainingStage),
	)

	if m.width >= 110 {
		return lipgloss.JoinHorizontal(lipgloss.Top, numeric, "    ", categorical)
	}
	return lipgloss.JoinVertical(lipgloss.Left, numeric, categorical)
}

func (m Model) renderBuckets(title string, buckets []segment.Bucket, unknown int) string {
	var max int
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}

	lines := []string{m.theme.Subtitle.Render(title)}
	for _, b := range buckets {
		lines = append(lines, fmt.Sprintf("%-8s %s %d", b.Label, m.bar(b.Count, max), b.Count))
	}
	if unknown > 0 {
		lines = append(lines, m.theme.Muted.Render(fmt.Sprintf("unknown: %d", unknown)))
	}
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderValueCounts(title string, counts []segment.ValueCount) string {
	lines := []string{m.theme.Subtitle.Render(title)}

	if len(counts) == 0 {
		lines = append(lines, m.theme.Muted.Render("no data"))
	}

	var max int
	for _, vc := range counts {
		if vc.Count > max {
			max = vc.Count
		}
	}
	for _, vc := range counts {
		label := vc.Value
		if len(label) > 20 {
			label = label[:19] + "…"
		}
		lines = append(lines, fmt.Sprintf("%-20s %s %d", label, m.bar(vc.Count, max), vc.Count))
	}
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// bar draws a proportional block bar in the primary color.
func (m Model) bar(count, max int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	width := count * 15 / max
	if width == 0 {
		width = 1
	}
	return lipgloss.NewStyle().Foreground(m.theme.Primary).Render(strings.Repeat("█", width))
}

// renderHelp shows the full keymap.
func (m Model) renderHelp() string {
	lines := []string{m.theme.Title.Render("Help")}

	for _, group := range m.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			lines = append(lines, fmt.Sprintf("%s %s",
				m.theme.Bold.Render(fmt.Sprintf("%-14s", h.Key)),
				m.theme.Normal.Render(h.Desc),
			))
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Muted.Render("press ? to close"))

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderFooter shows the short help line.
func (m Model) renderFooter() string {
	parts := make([]string, 0, 4)
	for _, binding := range m.keymap.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return m.theme.Muted.Render(strings.Join(parts, " · "))
}
