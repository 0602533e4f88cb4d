package tui

import (
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/segment"
	"github.com/techania/learner-segmentation-dashboard/internal/tui/themes"
)

// Config holds dashboard configuration. The dashboard is a read-only view
// over an already-computed snapshot; it classifies nothing itself.
type Config struct {
	Snapshot *model.Snapshot
	Engine   *segment.Engine
	Theme    themes.Theme
	Width    int
	Height   int
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  100,
		Height: 30,
	}
}

// WithSnapshot sets the snapshot the dashboard displays.
func WithSnapshot(snapshot *model.Snapshot) Option {
	return func(c *Config) {
		c.Snapshot = snapshot
	}
}

// WithEngine sets the engine whose thresholds annotate the segment views.
func WithEngine(engine *segment.Engine) Option {
	return func(c *Config) {
		c.Engine = engine
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
