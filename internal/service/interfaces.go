// Package service defines the contracts between the CLI and its
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// ReportWriter publishes a finished segmentation snapshot to an external
// destination such as a spreadsheet.
type ReportWriter interface {
	Write(ctx context.Context, snapshot *model.Snapshot) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// WithDefaults fills unset fields with the standard retry policy.
func (o RetryOptions) WithDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	return o
}
