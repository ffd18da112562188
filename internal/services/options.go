package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/errors"
)

// Options holds the settings shared by the services.
type Options struct {
	Clock            clock.Clock
	Calendar         clock.Calendar
	StoreTimeout     time.Duration // 0 = no limit
	DueLimit         int
	HeatmapDays      int
	DefaultHierarchy string
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.System()
	}
	if o.DueLimit <= 0 {
		o.DueLimit = 50
	}
	if o.HeatmapDays <= 0 {
		o.HeatmapDays = 365
	}
	if o.DefaultHierarchy == "" {
		o.DefaultHierarchy = "General"
	}
	return o
}

// storeContext bounds a store call by the configured timeout.
func (o Options) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.StoreTimeout)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// storeErr passes application errors through and reports anything else as
// the store being unavailable.
func storeErr(op string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.NewStorageUnavailableError(op, err)
}
