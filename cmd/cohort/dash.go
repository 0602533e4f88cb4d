package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techania/learner-segmentation-dashboard/internal/tui"
	"github.com/techania/learner-segmentation-dashboard/internal/tui/themes"
)

func dashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the interactive dashboard",
		Long: `Segment a cohort snapshot and browse it in an interactive terminal
dashboard: overview, worklist with filtering, per-segment rosters, and
dimension drilldowns. All views read from one snapshot computed at startup.`,
		RunE: runDash,
	}

	bindSnapshotFlags(cmd, "dash")
	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin-mocha)")

	_ = viper.BindPFlag("dash.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDash(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, snapshot, err := loadSnapshot(ctx, "dash")
	if err != nil {
		return err
	}

	return tui.Run(
		tui.WithSnapshot(snapshot),
		tui.WithEngine(eng),
		tui.WithTheme(themes.GetTheme(viper.GetString("dash.theme"))),
	)
}
