package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/techania/learner-segmentation-dashboard/internal/segment"
)

// LoadSegmentationConfig builds the engine configuration from the
// segmentation.* viper keys, leaving the compiled-in defaults in place for
// any key that is not set. The reference date always comes from the caller.
func LoadSegmentationConfig(referenceDate time.Time) (segment.Config, error) {
	cfg := segment.DefaultConfig()
	cfg.ReferenceDate = referenceDate

	if viper.IsSet("segmentation.engagement_critical_days") {
		cfg.EngagementCriticalDays = viper.GetInt("segmentation.engagement_critical_days")
	}
	if viper.IsSet("segmentation.engagement_moderate_days") {
		cfg.EngagementModerateDays = viper.GetInt("segmentation.engagement_moderate_days")
	}
	if viper.IsSet("segmentation.progress_critical_pct") {
		cfg.ProgressCriticalPct = viper.GetFloat64("segmentation.progress_critical_pct")
	}
	if viper.IsSet("segmentation.progress_moderate_pct") {
		cfg.ProgressModeratePct = viper.GetFloat64("segmentation.progress_moderate_pct")
	}
	if viper.IsSet("segmentation.worklist_inactivity_days") {
		cfg.WorklistInactivityDays = viper.GetInt("segmentation.worklist_inactivity_days")
	}

	if err := cfg.Validate(); err != nil {
		return segment.Config{}, err
	}
	return cfg, nil
}

// ResolveAsOf turns an --as-of flag value into the engine's reference date.
// An empty value means today; either way the result is a date at UTC
// midnight, so day arithmetic never depends on the time of day the tool
// runs.
func ResolveAsOf(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	if parsed := segment.ParseDate(value); parsed != nil {
		return *parsed, nil
	}
	return time.Time{}, fmt.Errorf("invalid as-of date %q: expected a date like 2006-01-02", value)
}
