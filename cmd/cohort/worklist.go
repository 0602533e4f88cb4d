package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techania/learner-segmentation-dashboard/internal/export"
	"github.com/techania/learner-segmentation-dashboard/internal/report"
)

func worklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worklist",
		Short: "Show the high-risk learner priority worklist",
		Long: `Segment a cohort snapshot and print only the priority worklist: every
learner who is critical, reports a barrier, or has been inactive past the
worklist threshold, ranked most urgent first.`,
		RunE: runWorklist,
	}

	bindSnapshotFlags(cmd, "worklist")
	cmd.Flags().Int("limit", 0, "Rows shown (0 shows everyone)")
	cmd.Flags().Bool("wide", false, "Include source detail columns")
	cmd.Flags().String("format", "table", "Output format (table, csv, json)")

	_ = viper.BindPFlag("worklist.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("worklist.wide", cmd.Flags().Lookup("wide"))
	_ = viper.BindPFlag("worklist.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runWorklist(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, snapshot, err := loadSnapshot(ctx, "worklist")
	if err != nil {
		return err
	}

	switch format := viper.GetString("worklist.format"); format {
	case "table":
		opts := report.Options{
			WorklistLimit: viper.GetInt("worklist.limit"),
			Wide:          viper.GetBool("worklist.wide"),
		}
		return report.NewRenderer(eng, opts).RenderWorklist(os.Stdout, snapshot)
	case "csv":
		return export.WriteWorklistCSV(os.Stdout, snapshot)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.BuildReport(snapshot).Worklist)
	default:
		return fmt.Errorf("unknown format %q (expected table, csv, or json)", format)
	}
}
