package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/vkuzmenko/techstore-backend/pkg/logger"
)

const defaultCartRetention = 14 * 24 * time.Hour

type abandonedCartDeleter interface {
	DeleteAbandonedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AbandonedCartJobParams configure the abandoned cart cleanup job.
type AbandonedCartJobParams struct {
	Logger    *logger.Logger
	Carts     abandonedCartDeleter
	Retention time.Duration
	Now       func() time.Time
}

type abandonedCartJob struct {
	logg      *logger.Logger
	carts     abandonedCartDeleter
	retention time.Duration
	now       func() time.Time
}

// NewAbandonedCartJob builds the job that purges anonymous carts whose Redis
// session expired long ago and that never reached checkout.
func NewAbandonedCartJob(params AbandonedCartJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultCartRetention
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &abandonedCartJob{
		logg:      params.Logger,
		carts:     params.Carts,
		retention: retention,
		now:       now,
	}, nil
}

func (j *abandonedCartJob) Name() string { return "abandoned_cart_cleanup" }

func (j *abandonedCartJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)
	removed, err := j.carts.DeleteAbandonedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete abandoned carts: %w", err)
	}
	ctx = j.logg.WithFields(ctx, map[string]any{
		"cutoff":  cutoff.Format(time.RFC3339),
		"removed": removed,
	})
	j.logg.Info(ctx, "abandoned cart cleanup done")
	return nil
}
