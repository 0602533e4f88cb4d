package segment

import "github.com/techania/learner-segmentation-dashboard/internal/model"

// ClassifyEngagement assigns an engagement segment from the number of days
// since the learner was last seen. A nil value means the last-seen date was
// missing or unparseable and yields Unknown, never a real segment.
func (e *Engine) ClassifyEngagement(days *int) model.Segment {
	if days == nil {
		return model.SegmentUnknown
	}
	switch {
	case *days > e.cfg.EngagementCriticalDays:
		return model.SegmentCritical
	case *days > e.cfg.EngagementModerateDays:
		return model.SegmentModerate
	default:
		return model.SegmentOnTrack
	}
}

// ClassifyProgress assigns a progress segment from a cleaned completion
// percentage. A nil value yields Unknown.
func (e *Engine) ClassifyProgress(progress *float64) model.Segment {
	if progress == nil {
		return model.SegmentUnknown
	}
	switch {
	case *progress < e.cfg.ProgressCriticalPct:
		return model.SegmentCritical
	case *progress < e.cfg.ProgressModeratePct:
		return model.SegmentModerate
	default:
		return model.SegmentOnTrack
	}
}

// ResolveComposite merges the two sub-segments and the barrier flag into the
// learner's overall segment. Precedence: any Critical sub-segment or a
// reported barrier wins, then any Moderate sub-segment, then On Track.
// Unknown sub-segments count as neither Critical nor Moderate, so a learner
// with missing data and no other risk signal lands in On Track rather than
// being escalated; the composite itself is never Unknown.
func ResolveComposite(engagement, progress model.Segment, hasBarrier bool) model.Segment {
	if engagement == model.SegmentCritical || progress == model.SegmentCritical || hasBarrier {
		return model.SegmentCritical
	}
	if engagement == model.SegmentModerate || progress == model.SegmentModerate {
		return model.SegmentModerate
	}
	return model.SegmentOnTrack
}
