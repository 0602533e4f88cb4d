package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExportWritesFiles(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "segmented.csv")

	viper.Set("export.input", writeTestCohort(t))
	viper.Set("export.as_of", "2025-08-05")
	viper.Set("export.output", output)
	viper.Set("export.worklist", true)

	cmd := exportCmd()
	cmd.SetContext(context.Background())
	require.NoError(t, runExport(cmd, nil))

	cohortData, err := os.ReadFile(output)
	require.NoError(t, err)
	cohort := string(cohortData)

	// Source columns in input order, extras in place, derived appended.
	assert.Contains(t, cohort, "First Name,Last Name,Last Seen,Progress,Average Grade,Barriers,Training Stage,Mentor,Name,Days_Since_Last_Seen")
	assert.Contains(t, cohort, "Amara,Okafor,2025-08-03,88,92,,Capstone,J. Reyes,Amara Okafor,2")
	assert.Contains(t, cohort, "Ben,Roy,2025-07-10,32,55,Childcare,Foundations,,Ben Roy,26,Critical,Critical,Has Barriers,Critical / Urgent,Childcare")

	worklistData, err := os.ReadFile(filepath.Join(dir, "cohort_worklist.csv"))
	require.NoError(t, err)
	worklist := string(worklistData)

	assert.Contains(t, worklist, "No.,Name,Days_Since_Last_Seen")
	assert.Contains(t, worklist, "1,Ben Roy,26,32,55,Has Barriers,Critical,Critical,Critical / Urgent,2025-07-10,Childcare,Foundations")
	assert.NotContains(t, worklist, "Amara Okafor")
}

func TestRunExportSkipsWorklistByDefault(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()

	viper.Set("export.input", writeTestCohort(t))
	viper.Set("export.as_of", "2025-08-05")
	viper.Set("export.output", filepath.Join(dir, "segmented.csv"))

	cmd := exportCmd()
	cmd.SetContext(context.Background())
	require.NoError(t, runExport(cmd, nil))

	_, err := os.Stat(filepath.Join(dir, "cohort_worklist.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunExportMissingInput(t *testing.T) {
	resetViper(t)

	cmd := exportCmd()
	cmd.SetContext(context.Background())
	err := runExport(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cohort file given")
}
