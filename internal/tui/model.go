// Package tui implements the interactive dashboard over a segmentation
// snapshot.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/techania/learner-segmentation-dashboard/internal/cli"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/segment"
	"github.com/techania/learner-segmentation-dashboard/internal/tui/themes"
)

// Tab identifies one dashboard view.
type Tab int

const (
	TabOverview Tab = iota
	TabWorklist
	TabSegments
	TabBreakdown
)

var tabNames = []string{"Overview", "Worklist", "Segments", "Breakdown"}

// Model holds the dashboard state. All data is derived from the snapshot at
// construction; the dashboard never reclassifies.
type Model struct {
	theme        themes.Theme
	keymap       KeyMap
	snapshot     *model.Snapshot
	engine       *segment.Engine
	breakdown    segment.Breakdown
	shareBars    map[model.Segment]progress.Model
	worklist     table.Model
	segments     table.Model
	filter       textinput.Model
	tab          Tab
	segmentIndex int
	width        int
	height       int
	filtering    bool
	showHelp     bool
	quitting     bool
}

// newModel creates a dashboard model from the given configuration.
func newModel(cfg Config) Model {
	filter := textinput.New()
	filter.Placeholder = "name or stage"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	m := Model{
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		snapshot:  cfg.Snapshot,
		engine:    cfg.Engine,
		breakdown: segment.BuildBreakdown(cfg.Snapshot.Learners),
		shareBars: make(map[model.Segment]progress.Model),
		filter:    filter,
		width:     cfg.Width,
		height:    cfg.Height,
	}

	for _, seg := range model.CompositeSegments {
		bar := progress.New(
			progress.WithSolidFill(string(cfg.Theme.SegmentColor(seg))),
			progress.WithWidth(40),
		)
		m.shareBars[seg] = bar
	}

	m.worklist = newLearnerTable(cfg.Theme, m.tableHeight())
	m.segments = newLearnerTable(cfg.Theme, m.tableHeight())
	m.worklist.Focus()
	m.refreshWorklist()
	m.refreshSegments()

	return m
}

// learnerColumns is the shared column layout for worklist and segment
// tables.
func learnerColumns() []table.Column {
	return []table.Column{
		{Title: "No.", Width: 4},
		{Title: "Name", Width: 24},
		{Title: "Days", Width: 6},
		{Title: "Progress", Width: 9},
		{Title: "Grade", Width: 6},
		{Title: "Barriers", Width: 16},
		{Title: "Stage", Width: 14},
		{Title: "Segment", Width: 20},
	}
}

func newLearnerTable(theme themes.Theme, height int) table.Model {
	t := table.New(
		table.WithColumns(learnerColumns()),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(theme.Primary).
		BorderBottom(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return t
}

func learnerRow(l model.RankedLearner) table.Row {
	return table.Row{
		strconv.Itoa(l.Rank),
		l.Name,
		cli.FormatDays(l.DaysSinceLastSeen),
		cli.FormatPercent(l.Progress),
		cli.FormatScore(l.AverageGrade),
		l.BarrierDisplay(),
		l.Record.TrainingStage,
		l.Composite.Label(),
	}
}

// matchesFilter reports whether a learner matches the active filter text.
// Matching is a case-insensitive substring test on name and training stage.
func matchesFilter(l model.Learner, filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(l.Name), needle) ||
		strings.Contains(strings.ToLower(l.Record.TrainingStage), needle)
}

// refreshWorklist rebuilds the worklist table from the snapshot and the
// current filter.
func (m *Model) refreshWorklist() {
	rows := make([]table.Row, 0, len(m.snapshot.Worklist))
	for _, l := range m.snapshot.Worklist {
		if !matchesFilter(l.Learner, m.filter.Value()) {
			continue
		}
		rows = append(rows, learnerRow(l))
	}
	m.worklist.SetRows(rows)
}

// refreshSegments rebuilds the segment table for the selected partition.
func (m *Model) refreshSegments() {
	if len(m.snapshot.Partitions) == 0 {
		m.segments.SetRows(nil)
		return
	}
	partition := m.snapshot.Partitions[m.segmentIndex]
	rows := make([]table.Row, 0, len(partition.Learners))
	for _, l := range partition.Learners {
		rows = append(rows, learnerRow(l))
	}
	m.segments.SetRows(rows)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil
	}

	return m.updateActiveTable(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Force quit works regardless of state.
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen

	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil

	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil

	case key.Matches(msg, m.keymap.Filter):
		m.tab = TabWorklist
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.ClearFilter):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.refreshWorklist()
		}
		return m, nil

	case key.Matches(msg, m.keymap.NextSegment):
		if m.tab == TabSegments && len(m.snapshot.Partitions) > 0 {
			m.segmentIndex = (m.segmentIndex + 1) % len(m.snapshot.Partitions)
			m.refreshSegments()
			return m, nil
		}

	case key.Matches(msg, m.keymap.PrevSegment):
		if m.tab == TabSegments && len(m.snapshot.Partitions) > 0 {
			n := len(m.snapshot.Partitions)
			m.segmentIndex = (m.segmentIndex + n - 1) % n
			m.refreshSegments()
			return m, nil
		}
	}

	return m.updateActiveTable(msg)
}

// handleFilterKey routes keys to the filter input while it is active.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.refreshWorklist()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshWorklist()
	return m, cmd
}

func (m Model) updateActiveTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case TabWorklist:
		m.worklist, cmd = m.worklist.Update(msg)
	case TabSegments:
		m.segments, cmd = m.segments.Update(msg)
	}
	return m, cmd
}

// tableHeight leaves room for the header, tab bar, and footer.
func (m Model) tableHeight() int {
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) handleResize() {
	m.worklist.SetHeight(m.tableHeight())
	m.segments.SetHeight(m.tableHeight())

	barWidth := m.width - 40
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 60 {
		barWidth = 60
	}
	for seg, bar := range m.shareBars {
		bar.Width = barWidth
		m.shareBars[seg] = bar
	}
}
