package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techania/learner-segmentation-dashboard/internal/common"
	"github.com/techania/learner-segmentation-dashboard/internal/config"
	"github.com/techania/learner-segmentation-dashboard/internal/loader"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/segment"
)

// loadSnapshot parses the cohort file bound under <prefix>.input and runs
// segmentation against the reference date from <prefix>.as_of. Every data
// command goes through here so thresholds, date handling, and input errors
// behave identically across the CLI.
func loadSnapshot(ctx context.Context, prefix string) (*segment.Engine, *model.Snapshot, error) {
	path := viper.GetString(prefix + ".input")
	if path == "" {
		return nil, nil, fmt.Errorf("no cohort file given; pass --input or set %s.input in config", prefix)
	}
	path = config.ExpandPath(path)

	asOf, err := config.ResolveAsOf(viper.GetString(prefix + ".as_of"))
	if err != nil {
		return nil, nil, err
	}

	segCfg, err := config.LoadSegmentationConfig(asOf)
	if err != nil {
		return nil, nil, err
	}

	eng, err := segment.New(segCfg)
	if err != nil {
		return nil, nil, err
	}

	cohort, err := loader.NewParser().ParseFile(ctx, path)
	if err != nil {
		return nil, nil, common.NewUserError("could not read the cohort snapshot", err)
	}

	snapshot := eng.Run(cohort)
	return eng, &snapshot, nil
}

// bindSnapshotFlags registers the input and as-of flags every data command
// shares and binds them under the command's viper namespace.
func bindSnapshotFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringP("input", "i", "", "Cohort snapshot file (CSV)")
	cmd.Flags().String("as-of", "", "Reference date for day counts (format: 2006-01-02, default: today)")

	_ = viper.BindPFlag(prefix+".input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag(prefix+".as_of", cmd.Flags().Lookup("as-of"))
}
