package api

import (
	"context"

	"github.com/vytor/flashreel/internal/services"
)

// HealthChecker reports whether the backing store answers.
type HealthChecker interface {
	Check(ctx context.Context) error
}

type Server struct {
	Cards     services.CardService
	Hierarchy services.HierarchyService
	Reviews   services.ReviewService
	Stats     services.StatsService
	Imports   services.ImportService
	Health    HealthChecker
	Limiter   *UserLimiter
}
