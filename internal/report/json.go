package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// Report is the machine-readable form of a snapshot. Pointer fields marshal
// to null when the source value was unreadable.
type Report struct {
	AsOf     string          `json:"as_of"`
	Total    int             `json:"total_learners"`
	Segments []SegmentReport `json:"segments"`
	Worklist []LearnerReport `json:"worklist"`
}

// SegmentReport summarizes one composite segment.
type SegmentReport struct {
	Segment string  `json:"segment"`
	Count   int     `json:"count"`
	Share   float64 `json:"share_pct"`
}

// LearnerReport is one ranked learner in machine-readable form.
type LearnerReport struct {
	Rank              int      `json:"rank"`
	Name              string   `json:"name"`
	DaysSinceLastSeen *int     `json:"days_since_last_seen"`
	LastSeen          string   `json:"last_seen,omitempty"`
	Progress          *float64 `json:"progress_pct"`
	AverageGrade      *float64 `json:"average_grade"`
	HasBarrier        bool     `json:"has_barrier"`
	Barriers          string   `json:"barriers,omitempty"`
	TrainingStage     string   `json:"training_stage,omitempty"`
	Engagement        string   `json:"engagement_segment"`
	ProgressBand      string   `json:"progress_segment"`
	Composite         string   `json:"composite_segment"`
}

// BuildReport converts a snapshot into its machine-readable form. Segment
// names match the CSV export: short labels for the per-dimension segments,
// full labels for the composite.
func BuildReport(snapshot *model.Snapshot) Report {
	report := Report{
		AsOf:     snapshot.ReferenceDate.Format("2006-01-02"),
		Total:    snapshot.Summary.Total,
		Segments: make([]SegmentReport, 0, len(snapshot.Summary.Segments)),
		Worklist: make([]LearnerReport, 0, len(snapshot.Worklist)),
	}
	for _, stat := range snapshot.Summary.Segments {
		report.Segments = append(report.Segments, SegmentReport{
			Segment: stat.Segment.Label(),
			Count:   stat.Count,
			Share:   stat.Share,
		})
	}
	for _, l := range snapshot.Worklist {
		report.Worklist = append(report.Worklist, buildLearnerReport(l))
	}
	return report
}

func buildLearnerReport(l model.RankedLearner) LearnerReport {
	lr := LearnerReport{
		Rank:              l.Rank,
		Name:              l.Name,
		DaysSinceLastSeen: l.DaysSinceLastSeen,
		Progress:          l.Progress,
		AverageGrade:      l.AverageGrade,
		HasBarrier:        l.HasBarrier,
		Barriers:          strings.TrimSpace(l.Record.Barriers),
		TrainingStage:     strings.TrimSpace(l.Record.TrainingStage),
		Engagement:        l.Engagement.ShortLabel(),
		ProgressBand:      l.ProgressBand.ShortLabel(),
		Composite:         l.Composite.Label(),
	}
	if l.LastSeen != nil {
		lr.LastSeen = l.LastSeen.Format("2006-01-02")
	}
	return lr
}

// WriteJSON writes the machine-readable report with two-space indentation.
func WriteJSON(w io.Writer, snapshot *model.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(snapshot))
}
