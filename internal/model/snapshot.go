package model

import "time"

// RankedLearner is a learner with its 1-based position in an ordered list.
type RankedLearner struct {
	Learner
	Rank int
}

// Partition groups the learners of one composite segment, numbered 1..N in
// source order independently of other partitions.
type Partition struct {
	Segment  Segment
	Learners []RankedLearner
}

// SegmentStat holds the membership count and cohort share of one composite
// segment.
type SegmentStat struct {
	Segment Segment
	Count   int
	Share   float64 // percentage of the cohort; 0 for an empty cohort
}

// Summary aggregates composite segment membership for one snapshot.
type Summary struct {
	Total    int
	Segments []SegmentStat // ordered most to least urgent
}

// Stat returns the entry for the given segment, or a zero-count entry when
// the segment is not present.
func (s Summary) Stat(seg Segment) SegmentStat {
	for _, st := range s.Segments {
		if st.Segment == seg {
			return st
		}
	}
	return SegmentStat{Segment: seg}
}

// Snapshot is the complete result of one segmentation run. It is derived
// entirely from a single cohort file and a reference date; nothing in it
// survives between invocations.
type Snapshot struct {
	ReferenceDate time.Time
	ExtraColumns  []string
	Learners      []Learner       // source order
	Worklist      []RankedLearner // priority order, most urgent first
	Partitions    []Partition     // one per composite segment
	Summary       Summary
}

// PartitionFor returns the partition holding the given composite segment.
func (s *Snapshot) PartitionFor(seg Segment) (Partition, bool) {
	for _, p := range s.Partitions {
		if p.Segment == seg {
			return p, true
		}
	}
	return Partition{}, false
}
