package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-build-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ResolveService turns fragments into a validated build configuration and
// optionally records the result as a plan.
type ResolveService interface {
	// Resolve handles a wire request: fragments arrive as loosely typed
	// values and are typed against the schema first.
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error)
	// ResolveFragments resolves already typed fragments. When record is true
	// the redacted result is stored and its plan id returned.
	ResolveFragments(ctx context.Context, variant models.Variant, fragments []models.Fragment, record bool) (models.ResolvedConfig, string, error)
	// Variants lists the built-in variants.
	Variants(ctx context.Context) []models.Variant
}

// PlanService reads and prunes recorded plans.
type PlanService interface {
	GetPlan(ctx context.Context, id string) (models.BuildPlan, error)
	ListPlans(ctx context.Context, filter models.PlanFilter) ([]models.BuildPlan, error)
	PrunePlans(ctx context.Context, olderThan time.Time) (int64, error)
}

// AuthService issues and verifies bearer tokens for API callers.
type AuthService interface {
	CreateToken(ctx context.Context, subject string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
