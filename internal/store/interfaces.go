package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-build-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// PlanRepository persists recorded build plans.
type PlanRepository interface {
	// SavePlan inserts a new plan. Returns [ErrPlanAlreadyExists] when the id
	// is taken.
	SavePlan(ctx context.Context, plan models.BuildPlan) error
	// GetPlan returns the plan with the given id or [ErrPlanNotFound].
	GetPlan(ctx context.Context, id string) (models.BuildPlan, error)
	// ListPlans returns plans newest first, narrowed by filter.
	ListPlans(ctx context.Context, filter models.PlanFilter) ([]models.BuildPlan, error)
	// DeletePlansOlderThan removes plans created before t and reports how
	// many were removed.
	DeletePlansOlderThan(ctx context.Context, t time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
