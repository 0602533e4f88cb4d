package report

import (
	"fmt"
	"io"

	"github.com/techania/learner-segmentation-dashboard/internal/cli"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/segment"
)

const breakdownBarWidth = 24

// renderBreakdown writes the per-dimension drilldowns: engagement recency,
// progress, grades, barriers, and training stage.
func (r *Renderer) renderBreakdown(w io.Writer, snapshot *model.Snapshot) {
	b := segment.BuildBreakdown(snapshot.Learners)

	fmt.Fprintln(w, cli.StyleTitle(cli.ChartIcon+" Cohort Drilldowns"))

	renderBuckets(w, "Days since last seen", b.EngagementDays, b.UnknownDays)
	renderBuckets(w, "Progress (%)", b.Progress, b.UnknownProgress)
	renderBuckets(w, "Average grade (%)", b.AverageGrade, b.UnknownGrade)
	renderValueCounts(w, "Reported barriers", b.Barriers)
	renderValueCounts(w, "Training stage", b.TrainingStage)
}

func renderBuckets(w io.Writer, title string, buckets []segment.Bucket, unknown int) {
	fmt.Fprintln(w, cli.BoldStyle.Render(title))

	var max int
	for _, bucket := range buckets {
		if bucket.Count > max {
			max = bucket.Count
		}
	}
	for _, bucket := range buckets {
		fmt.Fprintf(w, "  %-8s %s %d\n", bucket.Label, asciiBar(bucket.Count, max, breakdownBarWidth), bucket.Count)
	}
	if unknown > 0 {
		fmt.Fprintln(w, cli.StyleSubtle(fmt.Sprintf("  unknown: %d", unknown)))
	}
	fmt.Fprintln(w)
}

func renderValueCounts(w io.Writer, title string, counts []segment.ValueCount) {
	fmt.Fprintln(w, cli.BoldStyle.Render(title))

	if len(counts) == 0 {
		fmt.Fprintln(w, cli.StyleSubtle("  no data"))
		fmt.Fprintln(w)
		return
	}

	var max int
	for _, vc := range counts {
		if vc.Count > max {
			max = vc.Count
		}
	}
	for _, vc := range counts {
		fmt.Fprintf(w, "  %-28s %s %d\n", truncate(vc.Value, 28), asciiBar(vc.Count, max, breakdownBarWidth), vc.Count)
	}
	fmt.Fprintln(w)
}

// truncate shortens long categorical values so bars stay aligned.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
