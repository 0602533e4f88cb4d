package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techania/learner-segmentation-dashboard/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the full segmentation report",
		Long: `Segment a cohort snapshot and render the complete report: overview,
distribution chart, priority worklist, per-segment rosters with intervention
plans, and dimension drilldowns.

Use --format json for a machine-readable report instead of the styled one.`,
		RunE: runReport,
	}

	bindSnapshotFlags(cmd, "report")
	cmd.Flags().Int("limit", report.DefaultWorklistLimit, "Worklist rows shown (0 shows everyone)")
	cmd.Flags().Bool("wide", false, "Include source detail columns in tables")
	cmd.Flags().Bool("plans", true, "Include intervention plans and criteria")
	cmd.Flags().Bool("breakdown", true, "Include dimension drilldowns")
	cmd.Flags().String("format", "table", "Output format (table, json)")

	_ = viper.BindPFlag("report.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("report.wide", cmd.Flags().Lookup("wide"))
	_ = viper.BindPFlag("report.plans", cmd.Flags().Lookup("plans"))
	_ = viper.BindPFlag("report.breakdown", cmd.Flags().Lookup("breakdown"))
	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, snapshot, err := loadSnapshot(ctx, "report")
	if err != nil {
		return err
	}

	switch format := viper.GetString("report.format"); format {
	case "json":
		return report.WriteJSON(os.Stdout, snapshot)
	case "table":
		opts := report.Options{
			WorklistLimit: viper.GetInt("report.limit"),
			Wide:          viper.GetBool("report.wide"),
			SkipPlans:     !viper.GetBool("report.plans"),
			SkipBreakdown: !viper.GetBool("report.breakdown"),
		}
		return report.NewRenderer(eng, opts).Render(os.Stdout, snapshot)
	default:
		return fmt.Errorf("unknown format %q (expected table or json)", format)
	}
}
