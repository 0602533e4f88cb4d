// Package report renders a segmentation snapshot for the terminal and for
// machine-readable output. It consumes a finished snapshot; nothing here
// classifies.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/techania/learner-segmentation-dashboard/internal/cli"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/segment"
)

// DefaultWorklistLimit caps the worklist table in the standard report; the
// full ranking is always available through the worklist command and exports.
const DefaultWorklistLimit = 15

// Options control which sections render and how wide tables are.
type Options struct {
	WorklistLimit int  // 0 shows every ranked learner
	Wide          bool // include source detail columns in tables
	SkipPlans     bool // omit intervention plan and criteria sections
	SkipBreakdown bool // omit dimension drilldowns
}

// Renderer writes the full terminal report.
type Renderer struct {
	engine *segment.Engine
	opts   Options
}

// NewRenderer creates a report renderer. The engine supplies threshold
// phrasing for the criteria sections.
func NewRenderer(engine *segment.Engine, opts Options) *Renderer {
	return &Renderer{engine: engine, opts: opts}
}

// Render writes every report section for one snapshot.
func (r *Renderer) Render(w io.Writer, snapshot *model.Snapshot) error {
	r.renderOverview(w, snapshot)
	r.renderDistribution(w, snapshot)
	r.renderWorklist(w, snapshot)
	if !r.opts.SkipPlans {
		r.renderSegments(w, snapshot)
	}
	if !r.opts.SkipBreakdown {
		r.renderBreakdown(w, snapshot)
	}
	return nil
}

// RenderWorklist writes only the priority worklist section.
func (r *Renderer) RenderWorklist(w io.Writer, snapshot *model.Snapshot) error {
	r.renderWorklist(w, snapshot)
	return nil
}

// RenderSegment writes the roster and intervention plan of one composite
// segment.
func (r *Renderer) RenderSegment(w io.Writer, snapshot *model.Snapshot, seg model.Segment) error {
	partition, ok := snapshot.PartitionFor(seg)
	if !ok {
		return fmt.Errorf("no %s partition in this snapshot", seg.Label())
	}
	r.renderPartition(w, partition)
	return nil
}

func (r *Renderer) renderOverview(w io.Writer, snapshot *model.Snapshot) {
	fmt.Fprintln(w, cli.FormatTitle("Learner Risk Segmentation"))

	lines := []string{
		fmt.Sprintf("As of:          %s", snapshot.ReferenceDate.Format("2006-01-02")),
		fmt.Sprintf("Total learners: %d", snapshot.Summary.Total),
	}
	for _, stat := range snapshot.Summary.Segments {
		lines = append(lines, fmt.Sprintf("%s %-20s %d (%.1f%%)",
			cli.SegmentIcon(stat.Segment), stat.Segment.Label()+":", stat.Count, stat.Share))
	}
	fmt.Fprintln(w, cli.RenderBox("Segmentation Overview", strings.Join(lines, "\n")))
}

func (r *Renderer) renderDistribution(w io.Writer, snapshot *model.Snapshot) {
	var max int
	for _, stat := range snapshot.Summary.Segments {
		if stat.Count > max {
			max = stat.Count
		}
	}
	if max == 0 {
		return
	}

	fmt.Fprintln(w, cli.StyleTitle(cli.ChartIcon+" Segment Distribution"))
	for _, stat := range snapshot.Summary.Segments {
		bar := cli.SegmentStyle(stat.Segment).Render(asciiBar(stat.Count, max, 30))
		fmt.Fprintf(w, "  %-22s %s %d\n", stat.Segment.Label(), bar, stat.Count)
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderWorklist(w io.Writer, snapshot *model.Snapshot) {
	fmt.Fprintln(w, cli.StyleTitle("🚨 High-Risk Learner Priority Worklist"))
	fmt.Fprintln(w, cli.StyleSubtle("Learners requiring immediate action"))

	if len(snapshot.Worklist) == 0 {
		fmt.Fprintln(w, cli.FormatSuccess("No learners need outreach right now."))
		fmt.Fprintln(w)
		return
	}

	shown := snapshot.Worklist
	limit := r.opts.WorklistLimit
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	renderLearnerTable(w, shown, r.opts.Wide)

	if len(shown) < len(snapshot.Worklist) {
		fmt.Fprintln(w, cli.StyleSubtle(fmt.Sprintf("Showing top %d of %d; export the worklist for the full list.",
			len(shown), len(snapshot.Worklist))))
	}
	fmt.Fprintln(w, cli.StyleSubtle("Everyone on this list follows the Critical / Urgent intervention plan."))
	fmt.Fprintln(w)
}

func (r *Renderer) renderSegments(w io.Writer, snapshot *model.Snapshot) {
	fmt.Fprintln(w, cli.StyleTitle("📂 Learner Segments + Targeted Interventions"))

	for _, partition := range snapshot.Partitions {
		r.renderPartition(w, partition)
	}
}

func (r *Renderer) renderPartition(w io.Writer, partition model.Partition) {
	fmt.Fprintln(w, cli.FormatSegment(partition.Segment))

	plan := segment.PlanFor(partition.Segment)
	fmt.Fprintln(w, cli.BoldStyle.Render("Who: ")+plan.Who)
	fmt.Fprintln(w, cli.BoldStyle.Render("Intervention plan:"))
	for _, action := range plan.Actions {
		fmt.Fprintf(w, "  %s %s\n", cli.WorklistIcon, action)
	}

	if len(partition.Learners) == 0 {
		fmt.Fprintln(w, cli.StyleSubtle("No learners in this segment."))
	} else {
		renderLearnerTable(w, partition.Learners, r.opts.Wide)
	}

	fmt.Fprintln(w, cli.StyleSubtle("How learners were categorized:"))
	for _, line := range r.engine.CriteriaFor(partition.Segment) {
		fmt.Fprintf(w, "  %s\n", cli.StyleSubtle("• "+line))
	}
	fmt.Fprintln(w)
}

// renderLearnerTable writes a ranked learner table in the logical column
// order: urgency signals first, source detail behind --wide.
func renderLearnerTable(w io.Writer, learners []model.RankedLearner, wide bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headers := []string{"No.", "Name", "Days Since Last Seen (days)", "Progress (%)",
		"Average Grade (%)", "Barriers", "Engagement", "Progress Seg.", "Composite"}
	if wide {
		headers = append(headers, "Last Seen", "Barrier Detail", "Training Stage")
	}

	styled := make([]string, len(headers))
	dashes := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for i := range learners {
		l := &learners[i]
		cells := []string{
			fmt.Sprintf("%d", l.Rank),
			l.Name,
			cli.FormatDays(l.DaysSinceLastSeen),
			cli.FormatPercent(l.Progress),
			cli.FormatScore(l.AverageGrade),
			l.BarrierFlag(),
			l.Engagement.ShortLabel(),
			l.ProgressBand.ShortLabel(),
			cli.SegmentStyle(l.Composite).Render(l.Composite.Label()),
		}
		if wide {
			cells = append(cells,
				cli.FormatDate(l.LastSeen),
				l.BarrierDisplay(),
				l.Record.TrainingStage,
			)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
}

// asciiBar scales count against max into a fixed-width block bar. Non-zero
// counts always draw at least one block.
func asciiBar(count, max, width int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	blocks := count * width / max
	if blocks == 0 {
		blocks = 1
	}
	return strings.Repeat("█", blocks)
}
