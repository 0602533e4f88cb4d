package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.ReferenceDate = time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults with reference date",
			modify: func(*Config) {},
		},
		{
			name:    "missing reference date",
			modify:  func(c *Config) { c.ReferenceDate = time.Time{} },
			wantErr: "reference date is required",
		},
		{
			name:    "negative moderate days",
			modify:  func(c *Config) { c.EngagementModerateDays = -1 },
			wantErr: "must not be negative",
		},
		{
			name: "inverted engagement thresholds",
			modify: func(c *Config) {
				c.EngagementCriticalDays = 5
				c.EngagementModerateDays = 10
			},
			wantErr: "must exceed moderate threshold",
		},
		{
			name:    "equal engagement thresholds",
			modify:  func(c *Config) { c.EngagementCriticalDays = c.EngagementModerateDays },
			wantErr: "must exceed moderate threshold",
		},
		{
			name: "inverted progress thresholds",
			modify: func(c *Config) {
				c.ProgressCriticalPct = 80
				c.ProgressModeratePct = 60
			},
			wantErr: "must not exceed moderate threshold",
		},
		{
			name:    "negative worklist threshold",
			modify:  func(c *Config) { c.WorklistInactivityDays = -2 },
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference date")
}

func TestEngine_Run(t *testing.T) {
	engine := testEngine(t)

	cohort := model.Cohort{
		ExtraColumns: []string{"Cohort ID"},
		Records: []model.LearnerRecord{
			{
				FirstName: "Amara", LastName: "Diallo",
				LastSeen: "2025-08-03", Progress: "82%", AverageGrade: "91",
				TrainingStage: "Bootcamp",
				Extra:         map[string]string{"Cohort ID": "C-7"},
			},
			{
				FirstName: "Ben", LastName: "Okafor",
				LastSeen: "2025-07-10", Progress: "35%", AverageGrade: "58",
				Barriers: "Needs laptop", TrainingStage: "Bootcamp",
			},
			{
				FirstName: "Chiara", LastName: "Rossi",
				LastSeen: "2025-07-26", Progress: "61", AverageGrade: "74",
				TrainingStage: "Placement",
			},
			{
				FirstName: "Dmitri", LastName: "Ivanov",
				LastSeen: "not a date", Progress: "??", AverageGrade: "",
				TrainingStage: "Bootcamp",
			},
			{
				FirstName: "Esi", LastName: "Mensah",
				LastSeen: "2025-08-01", Progress: "90%", AverageGrade: "88",
				Barriers: "none", TrainingStage: "Placement",
			},
		},
	}

	snapshot := engine.Run(cohort)

	require.Len(t, snapshot.Learners, 5, "no record is ever dropped")
	assert.Equal(t, cohort.ExtraColumns, snapshot.ExtraColumns)
	assert.Equal(t, engine.Config().ReferenceDate, snapshot.ReferenceDate)

	amara := snapshot.Learners[0]
	assert.Equal(t, "Amara Diallo", amara.Name)
	require.NotNil(t, amara.DaysSinceLastSeen)
	assert.Equal(t, 2, *amara.DaysSinceLastSeen)
	assert.Equal(t, model.SegmentOnTrack, amara.Composite)

	ben := snapshot.Learners[1]
	require.NotNil(t, ben.DaysSinceLastSeen)
	assert.Equal(t, 26, *ben.DaysSinceLastSeen)
	assert.Equal(t, model.SegmentCritical, ben.Engagement)
	assert.Equal(t, model.SegmentCritical, ben.ProgressBand)
	assert.True(t, ben.HasBarrier)
	assert.Equal(t, model.SegmentCritical, ben.Composite)

	chiara := snapshot.Learners[2]
	assert.Equal(t, model.SegmentModerate, chiara.Engagement)
	assert.Equal(t, model.SegmentModerate, chiara.ProgressBand)
	assert.Equal(t, model.SegmentModerate, chiara.Composite)

	dmitri := snapshot.Learners[3]
	assert.Nil(t, dmitri.DaysSinceLastSeen)
	assert.Nil(t, dmitri.Progress)
	assert.Nil(t, dmitri.AverageGrade)
	assert.Equal(t, model.SegmentUnknown, dmitri.Engagement)
	assert.Equal(t, model.SegmentUnknown, dmitri.ProgressBand)
	assert.False(t, dmitri.HasBarrier)
	assert.Equal(t, model.SegmentOnTrack, dmitri.Composite, "unknown data without risk signals never escalates")

	esi := snapshot.Learners[4]
	assert.False(t, esi.HasBarrier, "dismissive barrier text is not a barrier")
	assert.Equal(t, model.SegmentOnTrack, esi.Composite)

	assert.Equal(t, 5, snapshot.Summary.Total)
	assert.Equal(t, 1, snapshot.Summary.Stat(model.SegmentCritical).Count)
	assert.Equal(t, 1, snapshot.Summary.Stat(model.SegmentModerate).Count)
	assert.Equal(t, 3, snapshot.Summary.Stat(model.SegmentOnTrack).Count)

	require.Len(t, snapshot.Worklist, 1, "only Ben qualifies for outreach")
	assert.Equal(t, "Ben Okafor", snapshot.Worklist[0].Name)
	assert.Equal(t, 1, snapshot.Worklist[0].Rank)

	var partitioned int
	for _, partition := range snapshot.Partitions {
		partitioned += len(partition.Learners)
	}
	assert.Equal(t, len(snapshot.Learners), partitioned)
}

func TestEngine_Run_EmptyCohort(t *testing.T) {
	engine := testEngine(t)

	snapshot := engine.Run(model.Cohort{})

	assert.Empty(t, snapshot.Learners)
	assert.Empty(t, snapshot.Worklist)
	assert.Equal(t, 0, snapshot.Summary.Total)
	require.Len(t, snapshot.Partitions, 3)
	for _, stat := range snapshot.Summary.Segments {
		assert.Equal(t, 0.0, stat.Share)
	}
}

func TestEngine_Run_Deterministic(t *testing.T) {
	engine := testEngine(t)

	cohort := model.Cohort{
		Records: []model.LearnerRecord{
			{FirstName: "A", LastSeen: "2025-07-01", Progress: "20"},
			{FirstName: "B", LastSeen: "2025-07-01", Progress: "20"},
			{FirstName: "C", LastSeen: "2025-06-15", Progress: "45", Barriers: "visa issue"},
			{FirstName: "D", LastSeen: "2025-08-04", Progress: "75"},
		},
	}

	first := engine.Run(cohort)
	second := engine.Run(cohort)
	assert.Equal(t, first, second, "same cohort and config must produce identical snapshots")
}

func TestPlanFor(t *testing.T) {
	for _, seg := range model.CompositeSegments {
		plan := PlanFor(seg)
		assert.Equal(t, seg, plan.Segment)
		assert.NotEmpty(t, plan.Who)
		assert.NotEmpty(t, plan.Actions)
	}
	assert.Empty(t, PlanFor(model.SegmentUnknown).Actions)
}

func TestCriteriaFor_UsesConfiguredThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReferenceDate = time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	cfg.EngagementCriticalDays = 21
	cfg.ProgressCriticalPct = 40

	engine, err := New(cfg)
	require.NoError(t, err)

	critical := engine.CriteriaFor(model.SegmentCritical)
	require.NotEmpty(t, critical)
	assert.Contains(t, critical[0], "21 days")
	assert.Contains(t, critical[1], "40%")

	assert.Nil(t, engine.CriteriaFor(model.SegmentUnknown))
}
