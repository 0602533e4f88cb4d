package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techania/learner-segmentation-dashboard/internal/cli"
	"github.com/techania/learner-segmentation-dashboard/internal/config"
	"github.com/techania/learner-segmentation-dashboard/internal/export"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the segmented cohort",
		Long: `Segment a cohort snapshot and write the enriched dataset to CSV: the
original columns in input order followed by the derived segmentation columns.

--worklist also writes the priority worklist as its own CSV, and --sheets
publishes the full report to Google Sheets (run 'cohort auth sheets' once
to set up credentials).`,
		RunE: runExport,
	}

	bindSnapshotFlags(cmd, "export")
	cmd.Flags().StringP("output", "o", "cohort_segmented.csv", "Output file for the enriched dataset")
	cmd.Flags().Bool("worklist", false, "Also write the worklist to cohort_worklist.csv beside the output")
	cmd.Flags().Bool("sheets", false, "Also publish the report to Google Sheets")

	_ = viper.BindPFlag("export.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("export.worklist", cmd.Flags().Lookup("worklist"))
	_ = viper.BindPFlag("export.sheets", cmd.Flags().Lookup("sheets"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	_, snapshot, err := loadSnapshot(ctx, "export")
	if err != nil {
		return err
	}

	output := config.ExpandPath(viper.GetString("export.output"))
	if err := export.WriteCohortFile(output, snapshot); err != nil {
		return err
	}
	slog.Info(cli.FormatSuccess(fmt.Sprintf("✓ Wrote %d learners to %s", len(snapshot.Learners), output)))

	if viper.GetBool("export.worklist") {
		worklistPath := filepath.Join(filepath.Dir(output), "cohort_worklist.csv")
		if err := export.WriteWorklistFile(worklistPath, snapshot); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("✓ Wrote %d worklist learners to %s", len(snapshot.Worklist), worklistPath)))
	}

	if viper.GetBool("export.sheets") {
		if err := publishToSheets(cmd, snapshot); err != nil {
			return err
		}
	}

	return nil
}

func publishToSheets(cmd *cobra.Command, snapshot *model.Snapshot) error {
	interruptHandler := cli.NewInterruptHandler(nil)
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), true)

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("google sheets is not configured: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	writer.Progress = func(written, total int) {
		if bar == nil {
			bar = cli.NewProgressBar(os.Stderr, total, "Publishing to Google Sheets...")
		}
		_ = bar.Set(written)
	}

	if err := writer.Write(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}

	slog.Info(cli.FormatSuccess("✓ Published report to Google Sheets"))
	return nil
}
