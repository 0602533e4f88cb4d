package segment

import "github.com/techania/learner-segmentation-dashboard/internal/model"

// Summarize counts composite segment membership and computes each segment's
// share of the cohort. Shares are zero for an empty cohort; there is no
// division by the total in that case.
func Summarize(learners []model.Learner) model.Summary {
	counts := make(map[model.Segment]int, len(model.CompositeSegments))
	for _, l := range learners {
		counts[l.Composite]++
	}

	summary := model.Summary{
		Total:    len(learners),
		Segments: make([]model.SegmentStat, 0, len(model.CompositeSegments)),
	}
	for _, seg := range model.CompositeSegments {
		stat := model.SegmentStat{Segment: seg, Count: counts[seg]}
		if summary.Total > 0 {
			stat.Share = float64(stat.Count) / float64(summary.Total) * 100
		}
		summary.Segments = append(summary.Segments, stat)
	}
	return summary
}

// PartitionBySegment splits learners into one group per composite segment.
// Source order is preserved within each group and every group is numbered
// from 1 independently.
func PartitionBySegment(learners []model.Learner) []model.Partition {
	partitions := make([]model.Partition, 0, len(model.CompositeSegments))
	for _, seg := range model.CompositeSegments {
		partition := model.Partition{Segment: seg}
		for _, l := range learners {
			if l.Composite != seg {
				continue
			}
			partition.Learners = append(partition.Learners, model.RankedLearner{
				Learner: l,
				Rank:    len(partition.Learners) + 1,
			})
		}
		partitions = append(partitions, partition)
	}
	return partitions
}
