// Package segment implements the learner risk segmentation engine. It turns
// a raw cohort snapshot into enriched learners, composite segment
// assignments, aggregate counts, and a prioritized outreach worklist. The
// engine is deterministic: the same cohort and configuration always produce
// the same snapshot, and nothing is carried over between runs.
package segment

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// Engine performs one segmentation pass over a cohort.
type Engine struct {
	cfg Config
}

// Config holds the named values that drive classification. All thresholds
// are exclusive on the urgent side: a learner is Critical on engagement only
// when days exceed EngagementCriticalDays, and Critical on progress only
// when the value is strictly below ProgressCriticalPct.
type Config struct {
	// ReferenceDate anchors all day arithmetic. The engine never reads the
	// clock; callers decide what "today" means.
	ReferenceDate time.Time

	EngagementCriticalDays int
	EngagementModerateDays int
	ProgressCriticalPct    float64
	ProgressModeratePct    float64

	// WorklistInactivityDays pulls learners onto the worklist once their
	// inactivity exceeds it, even when their composite segment is not
	// Critical.
	WorklistInactivityDays int
}

// DefaultConfig returns the standard thresholds. The reference date is left
// zero and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		EngagementCriticalDays: 14,
		EngagementModerateDays: 7,
		ProgressCriticalPct:    50,
		ProgressModeratePct:    70,
		WorklistInactivityDays: 10,
	}
}

// Validate checks the configuration for values that would produce
// meaningless segments.
func (c Config) Validate() error {
	if c.ReferenceDate.IsZero() {
		return fmt.Errorf("reference date is required")
	}
	if c.EngagementModerateDays < 0 {
		return fmt.Errorf("engagement moderate threshold must not be negative, got %d", c.EngagementModerateDays)
	}
	if c.EngagementCriticalDays <= c.EngagementModerateDays {
		return fmt.Errorf("engagement critical threshold (%d) must exceed moderate threshold (%d)",
			c.EngagementCriticalDays, c.EngagementModerateDays)
	}
	if c.ProgressCriticalPct > c.ProgressModeratePct {
		return fmt.Errorf("progress critical threshold (%.1f) must not exceed moderate threshold (%.1f)",
			c.ProgressCriticalPct, c.ProgressModeratePct)
	}
	if c.WorklistInactivityDays < 0 {
		return fmt.Errorf("worklist inactivity threshold must not be negative, got %d", c.WorklistInactivityDays)
	}
	return nil
}

// New creates a segmentation engine with validated configuration.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid segmentation config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Run segments an entire cohort in one pass. Every record in the cohort
// appears in the result exactly once; records are never dropped, and parse
// failures surface as Unknown sub-segments rather than errors. An empty
// cohort yields an empty snapshot.
func (e *Engine) Run(cohort model.Cohort) model.Snapshot {
	slog.Info("segmenting cohort",
		"learners", len(cohort.Records),
		"reference_date", e.cfg.ReferenceDate.Format("2006-01-02"))

	learners := make([]model.Learner, len(cohort.Records))
	for i, record := range cohort.Records {
		learners[i] = e.Enrich(record)
	}

	snapshot := model.Snapshot{
		ReferenceDate: e.cfg.ReferenceDate,
		ExtraColumns:  cohort.ExtraColumns,
		Learners:      learners,
		Worklist:      e.BuildWorklist(learners),
		Partitions:    PartitionBySegment(learners),
		Summary:       Summarize(learners),
	}

	slog.Info("segmentation complete",
		"critical", snapshot.Summary.Stat(model.SegmentCritical).Count,
		"moderate", snapshot.Summary.Stat(model.SegmentModerate).Count,
		"on_track", snapshot.Summary.Stat(model.SegmentOnTrack).Count,
		"worklist", len(snapshot.Worklist))

	return snapshot
}

// Enrich derives every computed field for a single record: parsed values,
// sub-segments, the barrier flag, and the composite segment.
func (e *Engine) Enrich(record model.LearnerRecord) model.Learner {
	learner := model.Learner{
		Record:       record,
		Name:         FullName(record.FirstName, record.LastName),
		LastSeen:     ParseDate(record.LastSeen),
		Progress:     CleanPercent(record.Progress),
		AverageGrade: CleanPercent(record.AverageGrade),
		HasBarrier:   HasBarrier(record.Barriers),
	}
	if learner.LastSeen != nil {
		days := DaysBetween(*learner.LastSeen, e.cfg.ReferenceDate)
		learner.DaysSinceLastSeen = &days
	}
	learner.Engagement = e.ClassifyEngagement(learner.DaysSinceLastSeen)
	learner.ProgressBand = e.ClassifyProgress(learner.Progress)
	learner.Composite = ResolveComposite(learner.Engagement, learner.ProgressBand, learner.HasBarrier)
	return learner
}
