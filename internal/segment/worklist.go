package segment

import (
	"sort"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// WorklistCandidate reports whether a learner belongs on the outreach
// worklist: composite Critical, a reported barrier, or inactivity beyond
// the configured threshold. An unknown day count never satisfies the
// inactivity rule on its own.
func (e *Engine) WorklistCandidate(l model.Learner) bool {
	if l.Composite == model.SegmentCritical || l.HasBarrier {
		return true
	}
	return l.DaysSinceLastSeen != nil && *l.DaysSinceLastSeen > e.cfg.WorklistInactivityDays
}

// BuildWorklist selects the learners needing outreach and orders them most
// urgent first: longest inactivity, then lowest progress. Unknown values
// sort least urgent on both keys. The sort is stable, so learners that tie
// on both keys keep their source order, and ranks run 1..N with no gaps.
func (e *Engine) BuildWorklist(learners []model.Learner) []model.RankedLearner {
	var selected []model.Learner
	for _, l := range learners {
		if e.WorklistCandidate(l) {
			selected = append(selected, l)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if c := compareDaysDesc(selected[i].DaysSinceLastSeen, selected[j].DaysSinceLastSeen); c != 0 {
			return c < 0
		}
		return compareProgressAsc(selected[i].Progress, selected[j].Progress) < 0
	})

	ranked := make([]model.RankedLearner, len(selected))
	for i, l := range selected {
		ranked[i] = model.RankedLearner{Learner: l, Rank: i + 1}
	}
	return ranked
}

// compareDaysDesc orders day counts descending with nil last.
func compareDaysDesc(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	default:
		return 0
	}
}

// compareProgressAsc orders progress ascending with nil last.
func compareProgressAsc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
