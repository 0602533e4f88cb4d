package segment

import (
	"sort"
	"strings"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// Bucket is one bar of a numeric distribution.
type Bucket struct {
	Label string
	Count int
}

// ValueCount is one bar of a categorical distribution.
type ValueCount struct {
	Value string
	Count int
}

// Breakdown holds the per-dimension drilldowns for a snapshot. Unknown
// values are counted separately rather than folded into a bucket.
type Breakdown struct {
	EngagementDays  []Bucket
	Progress        []Bucket
	AverageGrade    []Bucket
	Barriers        []ValueCount
	TrainingStage   []ValueCount
	UnknownDays     int
	UnknownProgress int
	UnknownGrade    int
}

// Day buckets align with the engagement thresholds so each bar maps onto a
// segment boundary.
var dayBuckets = []struct {
	label string
	max   int // inclusive upper bound; ignored for the last bucket
}{
	{"<=7", 7},
	{"8-14", 14},
	{"15-21", 21},
	{"22-28", 28},
	{"29+", 0},
}

// percentBucket is a histogram bin with an exclusive upper bound; the bound
// is ignored for the final bin.
type percentBucket struct {
	label string
	max   float64
}

var progressBuckets = []percentBucket{
	{"<50", 50},
	{"50-69", 70},
	{"70-89", 90},
	{"90+", 0},
}

var gradeBuckets = []percentBucket{
	{"<60", 60},
	{"60-69", 70},
	{"70-79", 80},
	{"80-89", 90},
	{"90+", 0},
}

// BuildBreakdown aggregates a cohort's learners along every drilldown
// dimension.
func BuildBreakdown(learners []model.Learner) Breakdown {
	b := Breakdown{
		EngagementDays: make([]Bucket, len(dayBuckets)),
		Progress:       make([]Bucket, len(progressBuckets)),
		AverageGrade:   make([]Bucket, len(gradeBuckets)),
	}
	for i, def := range dayBuckets {
		b.EngagementDays[i].Label = def.label
	}
	for i, def := range progressBuckets {
		b.Progress[i].Label = def.label
	}
	for i, def := range gradeBuckets {
		b.AverageGrade[i].Label = def.label
	}

	barrierCounts := make(map[string]int)
	stageCounts := make(map[string]int)

	for i := range learners {
		l := &learners[i]

		if l.DaysSinceLastSeen == nil {
			b.UnknownDays++
		} else {
			b.EngagementDays[dayBucketIndex(*l.DaysSinceLastSeen)].Count++
		}

		if l.Progress == nil {
			b.UnknownProgress++
		} else {
			b.Progress[percentBucketIndex(*l.Progress, progressBuckets)].Count++
		}

		if l.AverageGrade == nil {
			b.UnknownGrade++
		} else {
			b.AverageGrade[percentBucketIndex(*l.AverageGrade, gradeBuckets)].Count++
		}

		barrierCounts[l.BarrierDisplay()]++

		if stage := strings.TrimSpace(l.Record.TrainingStage); stage != "" {
			stageCounts[stage]++
		}
	}

	b.Barriers = sortedValueCounts(barrierCounts)
	b.TrainingStage = sortedValueCounts(stageCounts)
	return b
}

func dayBucketIndex(days int) int {
	for i, def := range dayBuckets[:len(dayBuckets)-1] {
		if days <= def.max {
			return i
		}
	}
	return len(dayBuckets) - 1
}

func percentBucketIndex(value float64, buckets []percentBucket) int {
	for i, def := range buckets[:len(buckets)-1] {
		if value < def.max {
			return i
		}
	}
	return len(buckets) - 1
}

// sortedValueCounts orders by count descending, then value ascending so
// equal counts render deterministically.
func sortedValueCounts(counts map[string]int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, ValueCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
