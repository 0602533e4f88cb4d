package segment

import (
	"fmt"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// Plan describes the recommended intervention for one composite segment.
type Plan struct {
	Segment model.Segment
	Who     string
	Actions []string
}

var plans = map[model.Segment]Plan{
	model.SegmentCritical: {
		Segment: model.SegmentCritical,
		Who:     "Learners with low engagement, behind on progress, or facing significant barriers",
		Actions: []string{
			"Immediate multi-channel outreach: call, SMS, and email within 24 hours",
			"Personalized coaching plan from a dedicated coach",
			"Escalate barrier resolution to program operations or support teams",
			"Daily accountability check-ins for the next 3 days with completion targets",
			"Track engagement and progress closely and alert on continued inactivity",
			"Pair with a high-performing peer buddy for mentorship",
			"Short-term incentivized milestones with recognition",
		},
	},
	model.SegmentModerate: {
		Segment: model.SegmentModerate,
		Who:     "Learners showing moderate engagement issues or slightly behind on progress",
		Actions: []string{
			"Weekly coach check-ins or automated nudges",
			"Targeted micro-interventions for specific learning gaps",
			"Watch engagement and progress trends and flag decline early",
			"Motivational nudges highlighting achievements and next steps",
			"Optional peer mentoring with more engaged learners",
			"Small rewards for incremental milestones",
		},
	},
	model.SegmentOnTrack: {
		Segment: model.SegmentOnTrack,
		Who:     "Highly engaged learners progressing well",
		Actions: []string{
			"Recognize achievements in dashboards and team meetings",
			"Offer enrichment modules and optional advanced challenges",
			"Suggest preparation activities for the next program stage",
			"Encourage mentoring of peers",
			"Badges or certificates for sustained progress",
			"Keep monitoring for early signs of risk",
		},
	},
}

// PlanFor returns the intervention plan for a composite segment. Segments
// without a plan yield an empty value.
func PlanFor(seg model.Segment) Plan {
	if plan, ok := plans[seg]; ok {
		return plan
	}
	return Plan{Segment: seg}
}

// CriteriaFor phrases the segmentation criteria for a composite segment
// using the engine's configured thresholds.
func (e *Engine) CriteriaFor(seg model.Segment) []string {
	cfg := e.cfg
	switch seg {
	case model.SegmentCritical:
		return []string{
			fmt.Sprintf("Engagement: not active for more than %d days", cfg.EngagementCriticalDays),
			fmt.Sprintf("Progress: below %g%% completion", cfg.ProgressCriticalPct),
			"Barriers: any reported personal, technical, or access challenge",
			"Any single criterion places the learner here",
			fmt.Sprintf("Worklist: all learners in this segment, plus anyone with barriers or inactive more than %d days", cfg.WorklistInactivityDays),
		}
	case model.SegmentModerate:
		return []string{
			fmt.Sprintf("Engagement: more than %d but at most %d days since last seen", cfg.EngagementModerateDays, cfg.EngagementCriticalDays),
			fmt.Sprintf("Progress: at least %g%% but below %g%% completion", cfg.ProgressCriticalPct, cfg.ProgressModeratePct),
			"No Critical criterion, at least one Moderate criterion",
		}
	case model.SegmentOnTrack:
		return []string{
			fmt.Sprintf("Engagement: seen within the last %d days", cfg.EngagementModerateDays),
			fmt.Sprintf("Progress: %g%% completion or higher", cfg.ProgressModeratePct),
			"Barriers: none reported",
			"No Critical or Moderate criterion",
		}
	default:
		return nil
	}
}
