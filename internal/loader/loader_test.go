package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techania/learner-segmentation-dashboard/internal/common"
)

func TestParse_FullSnapshot(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name,Last Seen,Progress,Average Grade,Barriers,Training Stage,Cohort ID,Mentor",
		"Amara,Diallo,2025-08-03,82%,91,,Bootcamp,C-7,J. Reyes",
		"Ben,Okafor,2025-07-10,35%,58,Needs laptop,Bootcamp,C-7,",
	}, "\n")

	cohort, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, cohort.Records, 2)
	assert.Equal(t, []string{"Cohort ID", "Mentor"}, cohort.ExtraColumns)
	assert.Equal(t, 0, cohort.SkippedRows)

	first := cohort.Records[0]
	assert.Equal(t, "Amara", first.FirstName)
	assert.Equal(t, "Diallo", first.LastName)
	assert.Equal(t, "2025-08-03", first.LastSeen)
	assert.Equal(t, "82%", first.Progress)
	assert.Equal(t, "91", first.AverageGrade)
	assert.Equal(t, "", first.Barriers)
	assert.Equal(t, "Bootcamp", first.TrainingStage)
	assert.Equal(t, "C-7", first.Extra["Cohort ID"])
	assert.Equal(t, "J. Reyes", first.Extra["Mentor"])

	second := cohort.Records[1]
	assert.Equal(t, "Needs laptop", second.Barriers)
	assert.Equal(t, "", second.Extra["Mentor"])
}

func TestParse_HeaderSynonyms(t *testing.T) {
	input := strings.Join([]string{
		"first_name,SURNAME,last_active,progress_pct,avg_grade,blockers,stage",
		"Chiara,Rossi,2025-07-26,61,74,,Placement",
	}, "\n")

	cohort, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, cohort.Records, 1)
	record := cohort.Records[0]
	assert.Equal(t, "Chiara", record.FirstName)
	assert.Equal(t, "Rossi", record.LastName)
	assert.Equal(t, "2025-07-26", record.LastSeen)
	assert.Equal(t, "61", record.Progress)
	assert.Equal(t, "74", record.AverageGrade)
	assert.Equal(t, "Placement", record.TrainingStage)
	assert.Empty(t, cohort.ExtraColumns, "synonym headers are core columns, not extras")
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name,Progress,Average Grade,Barriers,Training Stage",
		"Amara,Diallo,82%,91,,Bootcamp",
	}, "\n")

	_, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingColumn)
	assert.Contains(t, err.Error(), "missing Last Seen column")
}

func TestParse_ByteOrderMark(t *testing.T) {
	input := "\uFEFFFirst Name,Last Name,Last Seen,Progress,Average Grade,Barriers,Training Stage\n" +
		"Amara,Diallo,2025-08-03,82,91,,Bootcamp\n"

	cohort, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cohort.Records, 1)
	assert.Equal(t, "Amara", cohort.Records[0].FirstName)
}

func TestParse_SkipsBlankRows(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name,Last Seen,Progress,Average Grade,Barriers,Training Stage",
		"Amara,Diallo,2025-08-03,82,91,,Bootcamp",
		",,,,,,",
		"   ,,,,,,",
		"Ben,Okafor,2025-07-10,35,58,,Bootcamp",
	}, "\n")

	cohort, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, cohort.Records, 2)
	assert.Equal(t, 2, cohort.SkippedRows)
}

func TestParse_ShortRowReadsAsEmpty(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name,Last Seen,Progress,Average Grade,Barriers,Training Stage",
		"Amara,Diallo,2025-08-03",
	}, "\n")

	cohort, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cohort.Records, 1)
	assert.Equal(t, "", cohort.Records[0].Progress)
	assert.Equal(t, "", cohort.Records[0].TrainingStage)
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyCohort)
}

func TestParse_HeaderOnly(t *testing.T) {
	input := "First Name,Last Name,Last Seen,Progress,Average Grade,Barriers,Training Stage\n"

	cohort, err := NewParser().Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, cohort.Records)
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := NewParser().ParseFile(context.Background(), "does-not-exist.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open cohort file")
}
