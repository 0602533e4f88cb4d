package model

import (
	"strings"
	"time"
)

// LearnerRecord is one raw row from a cohort snapshot file. Values are kept
// exactly as read; parsing and classification happen downstream.
type LearnerRecord struct {
	FirstName     string
	LastName      string
	LastSeen      string // raw date text, any supported layout
	Progress      string // raw percentage text, may carry a trailing %
	AverageGrade  string
	Barriers      string
	TrainingStage string

	// Extra holds passthrough columns not part of the core schema,
	// keyed by their original header.
	Extra map[string]string
}

// Cohort is an ordered snapshot of learner records plus the passthrough
// column names from the source file, in their original order.
type Cohort struct {
	Records      []LearnerRecord
	ExtraColumns []string
	SkippedRows  int // fully blank rows dropped during load
}

// Learner is a record enriched with parsed values and segment assignments.
// Pointer fields are nil when the source value was missing or unparseable;
// nil is the only representation of an unknown value.
type Learner struct {
	Record            LearnerRecord
	Name              string
	LastSeen          *time.Time
	DaysSinceLastSeen *int
	Progress          *float64
	AverageGrade      *float64
	Engagement        Segment
	ProgressBand      Segment
	HasBarrier        bool
	Composite         Segment
}

// BarrierFlag returns the text label used for the barrier column in tables
// and exports.
func (l *Learner) BarrierFlag() string {
	if l.HasBarrier {
		return "Has Barriers"
	}
	return "No Barriers"
}

// BarrierDisplay returns the trimmed barrier text, or "No Barrier" when the
// field is empty. Dismissive values such as "none" are shown verbatim.
func (l *Learner) BarrierDisplay() string {
	trimmed := strings.TrimSpace(l.Record.Barriers)
	if trimmed == "" {
		return "No Barrier"
	}
	return trimmed
}
