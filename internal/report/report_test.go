package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/segment"
)

func testEngine(t *testing.T) *segment.Engine {
	t.Helper()
	cfg := segment.DefaultConfig()
	cfg.ReferenceDate = time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	eng, err := segment.New(cfg)
	require.NoError(t, err)
	return eng
}

func testSnapshot(t *testing.T) (*segment.Engine, *model.Snapshot) {
	t.Helper()
	eng := testEngine(t)
	snapshot := eng.Run(model.Cohort{Records: []model.LearnerRecord{
		{
			FirstName:     "Amara",
			LastName:      "Okafor",
			LastSeen:      "2025-08-03",
			Progress:      "88%",
			AverageGrade:  "92",
			TrainingStage: "Capstone",
		},
		{
			FirstName:     "Ben",
			LastName:      "Roy",
			LastSeen:      "2025-07-10",
			Progress:      "32",
			AverageGrade:  "55",
			Barriers:      "Childcare",
			TrainingStage: "Foundations",
		},
		{
			FirstName:     "Chiara",
			LastName:      "Moretti",
			LastSeen:      "2025-07-26",
			Progress:      "61",
			AverageGrade:  "74",
			TrainingStage: "Foundations",
		},
		{
			FirstName:    "Dmitri",
			LastName:     "Volkov",
			LastSeen:     "not a date",
			Progress:     "n/a",
			AverageGrade: "",
		},
	}})
	return eng, &snapshot
}

func TestRenderIncludesEverySection(t *testing.T) {
	eng, snapshot := testSnapshot(t)

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{WorklistLimit: DefaultWorklistLimit})
	require.NoError(t, r.Render(&buf, snapshot))
	out := buf.String()

	assert.Contains(t, out, "Learner Risk Segmentation")
	assert.Contains(t, out, "Total learners: 4")
	assert.Contains(t, out, "As of:")
	assert.Contains(t, out, "2025-08-05")
	assert.Contains(t, out, "Segment Distribution")
	assert.Contains(t, out, "High-Risk Learner Priority Worklist")
	assert.Contains(t, out, "Days Since Last Seen (days)")
	assert.Contains(t, out, "Learner Segments + Targeted Interventions")
	assert.Contains(t, out, "Critical / Urgent")
	assert.Contains(t, out, "Moderate / At-Risk")
	assert.Contains(t, out, "On Track / Low Risk")
	assert.Contains(t, out, "Intervention plan:")
	assert.Contains(t, out, "How learners were categorized:")
	assert.Contains(t, out, "Cohort Drilldowns")

	// Every learner shows up somewhere in the report.
	for _, name := range []string{"Amara Okafor", "Ben Roy", "Chiara Moretti", "Dmitri Volkov"} {
		assert.Contains(t, out, name)
	}
}

func TestRenderWorklistRows(t *testing.T) {
	eng, snapshot := testSnapshot(t)
	require.Len(t, snapshot.Worklist, 1)

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{SkipPlans: true, SkipBreakdown: true})
	require.NoError(t, r.Render(&buf, snapshot))
	out := buf.String()

	assert.Contains(t, out, "Ben Roy")
	assert.Contains(t, out, "Has Barriers")
	assert.Contains(t, out, "Critical / Urgent")
	assert.NotContains(t, out, "Showing top")
}

func TestRenderWorklistLimit(t *testing.T) {
	eng := testEngine(t)
	records := []model.LearnerRecord{
		{FirstName: "First", LastName: "Learner", LastSeen: "2025-06-01", Progress: "20"},
		{FirstName: "Second", LastName: "Learner", LastSeen: "2025-06-15", Progress: "25"},
		{FirstName: "Third", LastName: "Learner", LastSeen: "2025-07-01", Progress: "30"},
	}
	snapshot := eng.Run(model.Cohort{Records: records})
	require.Len(t, snapshot.Worklist, 3)

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{WorklistLimit: 2, SkipPlans: true, SkipBreakdown: true})
	require.NoError(t, r.Render(&buf, &snapshot))
	out := buf.String()

	assert.Contains(t, out, "First Learner")
	assert.Contains(t, out, "Second Learner")
	assert.NotContains(t, out, "Third Learner")
	assert.Contains(t, out, "Showing top 2 of 3")
}

func TestRenderEmptyWorklist(t *testing.T) {
	eng := testEngine(t)
	snapshot := eng.Run(model.Cohort{Records: []model.LearnerRecord{
		{FirstName: "Amara", LastName: "Okafor", LastSeen: "2025-08-03", Progress: "88", AverageGrade: "92"},
	}})
	require.Empty(t, snapshot.Worklist)

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{SkipPlans: true, SkipBreakdown: true})
	require.NoError(t, r.Render(&buf, &snapshot))

	assert.Contains(t, buf.String(), "No learners need outreach right now.")
}

func TestRenderWorklistSection(t *testing.T) {
	eng, snapshot := testSnapshot(t)

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{})
	require.NoError(t, r.RenderWorklist(&buf, snapshot))
	out := buf.String()

	assert.Contains(t, out, "High-Risk Learner Priority Worklist")
	assert.Contains(t, out, "Ben Roy")
	assert.NotContains(t, out, "Segment Distribution")
	assert.NotContains(t, out, "Intervention plan:")
}

func TestRenderSegmentSection(t *testing.T) {
	eng, snapshot := testSnapshot(t)

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{})
	require.NoError(t, r.RenderSegment(&buf, snapshot, model.SegmentModerate))
	out := buf.String()

	assert.Contains(t, out, "Moderate / At-Risk")
	assert.Contains(t, out, "Chiara Moretti")
	assert.Contains(t, out, "Intervention plan:")
	assert.NotContains(t, out, "Ben Roy")

	err := r.RenderSegment(&buf, snapshot, model.SegmentUnknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Unknown partition")
}

func TestRenderWideColumns(t *testing.T) {
	eng, snapshot := testSnapshot(t)

	var narrow, wide bytes.Buffer
	require.NoError(t, NewRenderer(eng, Options{SkipPlans: true, SkipBreakdown: true}).Render(&narrow, snapshot))
	require.NoError(t, NewRenderer(eng, Options{Wide: true, SkipPlans: true, SkipBreakdown: true}).Render(&wide, snapshot))

	assert.NotContains(t, narrow.String(), "Training Stage")
	assert.Contains(t, wide.String(), "Training Stage")
	assert.Contains(t, wide.String(), "Childcare")
}

func TestRenderUnknownValuesAsDash(t *testing.T) {
	eng := testEngine(t)
	snapshot := eng.Run(model.Cohort{Records: []model.LearnerRecord{
		{FirstName: "Dmitri", LastName: "Volkov", LastSeen: "never", Progress: "bad", AverageGrade: "58"},
	}})

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{SkipBreakdown: true})
	require.NoError(t, r.Render(&buf, &snapshot))

	var row string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Dmitri Volkov") {
			row = line
			break
		}
	}
	require.NotEmpty(t, row, "learner row should render in the segment table")
	assert.Contains(t, row, "-")
	assert.Contains(t, row, "Unknown")
	assert.Contains(t, row, "On Track / Low Risk")
}

func TestRenderBreakdownSections(t *testing.T) {
	eng, snapshot := testSnapshot(t)

	var buf bytes.Buffer
	r := NewRenderer(eng, Options{SkipPlans: true})
	require.NoError(t, r.Render(&buf, snapshot))
	out := buf.String()

	assert.Contains(t, out, "Days since last seen")
	assert.Contains(t, out, "<=7")
	assert.Contains(t, out, "Reported barriers")
	assert.Contains(t, out, "Childcare")
	assert.Contains(t, out, "No Barrier")
	assert.Contains(t, out, "Training stage")
	assert.Contains(t, out, "Capstone")
	// Dmitri's unreadable date and progress surface as unknown counts.
	assert.Contains(t, out, "unknown: 1")
}

func TestAsciiBar(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		max    int
		width  int
		blocks int
	}{
		{name: "full width", count: 10, max: 10, width: 20, blocks: 20},
		{name: "half width", count: 5, max: 10, width: 20, blocks: 10},
		{name: "small count rounds up to one block", count: 1, max: 100, width: 20, blocks: 1},
		{name: "zero count", count: 0, max: 10, width: 20, blocks: 0},
		{name: "zero max", count: 0, max: 0, width: 20, blocks: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := asciiBar(tt.count, tt.max, tt.width)
			assert.Equal(t, tt.blocks, strings.Count(bar, "█"))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "truncated…", truncate("truncated value", 10))
}

func TestBuildReport(t *testing.T) {
	_, snapshot := testSnapshot(t)

	report := BuildReport(snapshot)

	assert.Equal(t, "2025-08-05", report.AsOf)
	assert.Equal(t, 4, report.Total)

	total := 0
	for _, seg := range report.Segments {
		total += seg.Count
	}
	assert.Equal(t, 4, total)

	require.Len(t, report.Worklist, 1)
	ben := report.Worklist[0]
	assert.Equal(t, 1, ben.Rank)
	assert.Equal(t, "Ben Roy", ben.Name)
	require.NotNil(t, ben.DaysSinceLastSeen)
	assert.Equal(t, 26, *ben.DaysSinceLastSeen)
	assert.Equal(t, "2025-07-10", ben.LastSeen)
	assert.True(t, ben.HasBarrier)
	assert.Equal(t, "Childcare", ben.Barriers)
	assert.Equal(t, "Critical", ben.Engagement)
	assert.Equal(t, "Critical / Urgent", ben.Composite)
}

func TestWriteJSONNullsForUnknowns(t *testing.T) {
	eng := testEngine(t)
	snapshot := eng.Run(model.Cohort{Records: []model.LearnerRecord{
		{FirstName: "Esi", LastName: "Mensah", LastSeen: "2025-07-01", Progress: "", AverageGrade: ""},
	}})
	require.Len(t, snapshot.Worklist, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &snapshot))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Worklist, 1)
	assert.Nil(t, decoded.Worklist[0].Progress)
	assert.Nil(t, decoded.Worklist[0].AverageGrade)

	// Unknown numerics serialize as explicit nulls, not omitted keys.
	assert.Contains(t, buf.String(), `"progress_pct": null`)
	assert.Contains(t, buf.String(), `"average_grade": null`)
}
