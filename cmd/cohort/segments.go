package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techania/learner-segmentation-dashboard/internal/export"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/report"
)

func segmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Show per-segment rosters with intervention plans",
		Long: `Segment a cohort snapshot and print each composite segment's roster
together with its intervention plan and the criteria that put learners there.

Pass --segment to show a single segment; --format csv exports that segment's
rows (and requires --segment).`,
		RunE: runSegments,
	}

	bindSnapshotFlags(cmd, "segments")
	cmd.Flags().StringP("segment", "s", "", "Only this segment (critical, moderate, on-track)")
	cmd.Flags().Bool("wide", false, "Include source detail columns")
	cmd.Flags().String("format", "table", "Output format (table, csv)")

	_ = viper.BindPFlag("segments.segment", cmd.Flags().Lookup("segment"))
	_ = viper.BindPFlag("segments.wide", cmd.Flags().Lookup("wide"))
	_ = viper.BindPFlag("segments.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runSegments(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, snapshot, err := loadSnapshot(ctx, "segments")
	if err != nil {
		return err
	}

	var seg model.Segment
	if raw := viper.GetString("segments.segment"); raw != "" {
		seg, err = model.ParseSegment(raw)
		if err != nil {
			return err
		}
	}

	switch format := viper.GetString("segments.format"); format {
	case "table":
		r := report.NewRenderer(eng, report.Options{Wide: viper.GetBool("segments.wide")})
		if seg != "" {
			return r.RenderSegment(os.Stdout, snapshot, seg)
		}
		for _, partition := range snapshot.Partitions {
			if err := r.RenderSegment(os.Stdout, snapshot, partition.Segment); err != nil {
				return err
			}
		}
		return nil
	case "csv":
		if seg == "" {
			return fmt.Errorf("--format csv needs --segment to pick which rows to export")
		}
		return export.WriteSegmentCSV(os.Stdout, snapshot, seg)
	default:
		return fmt.Errorf("unknown format %q (expected table or csv)", format)
	}
}
