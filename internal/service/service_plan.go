package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/store"
	"github.com/MKhiriev/go-build-keeper/internal/validators"
	"github.com/MKhiriev/go-build-keeper/models"
)

// maxPlanListLimit bounds a single listing regardless of what the caller asks.
const maxPlanListLimit uint64 = 500

type planService struct {
	plans     store.PlanRepository
	validator validators.Validator

	logger *logger.Logger
}

// NewPlanService constructs a PlanService over plans.
func NewPlanService(plans store.PlanRepository, logger *logger.Logger) PlanService {
	return &planService{
		plans:     plans,
		validator: validators.NewRequestValidator(),
		logger:    logger,
	}
}

func (s *planService) GetPlan(ctx context.Context, id string) (models.BuildPlan, error) {
	if err := s.validator.Validate(ctx, id, validators.FieldPlanID); err != nil {
		return models.BuildPlan{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	plan, err := s.plans.GetPlan(ctx, id)
	if errors.Is(err, store.ErrPlanNotFound) {
		return models.BuildPlan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return models.BuildPlan{}, fmt.Errorf("get plan %s: %w", id, err)
	}

	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context, filter models.PlanFilter) ([]models.BuildPlan, error) {
	if filter.Limit == 0 {
		filter.Limit = models.DefaultPlanListLimit
	}
	filter.Limit = min(filter.Limit, maxPlanListLimit)

	plans, err := s.plans.ListPlans(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return plans, nil
}

func (s *planService) PrunePlans(ctx context.Context, olderThan time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	deleted, err := s.plans.DeletePlansOlderThan(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("prune plans: %w", err)
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("older_than", olderThan).Msg("pruned build plans")
	}

	return deleted, nil
}
