// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/internal/store"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/MKhiriev/go-build-keeper/internal/validators"
	"github.com/MKhiriev/go-build-keeper/models"
)

// IDGenerator produces plan ids.
type IDGenerator interface {
	Generate() string
}

type resolveService struct {
	resolver  *resolver.Resolver
	validator validators.Validator

	// plans is nil when recording is disabled.
	plans store.PlanRepository

	fingerprintSalt string
	ids             IDGenerator
	now             func() time.Time

	logger *logger.Logger
}

// NewResolveService constructs a ResolveService. plans may be nil, in which
// case requests with Record set fail with [ErrRecordingDisabled].
func NewResolveService(r *resolver.Resolver, plans store.PlanRepository, fingerprintSalt string, logger *logger.Logger) ResolveService {
	if r == nil {
		r = resolver.New(nil)
	}
	return &resolveService{
		resolver:        r,
		validator:       validators.NewRequestValidator(),
		plans:           plans,
		fingerprintSalt: fingerprintSalt,
		ids:             utils.NewUUIDGenerator(),
		now:             time.Now,
		logger:          logger,
	}
}

func (s *resolveService) Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("malformed resolve request")
		return models.ResolveResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	variant, err := s.variant(req)
	if err != nil {
		log.Debug().Err(err).Str("variant", req.Variant).Msg("variant lookup failed")
		return models.ResolveResult{}, err
	}

	fragments, err := s.fragments(req.Fragments)
	if err != nil {
		log.Debug().Err(err).Str("variant", variant.Name).Msg("request fragments rejected")
		return models.ResolveResult{}, err
	}

	cfg, plan, err := s.resolve(ctx, variant, fragments, req.Record)
	if err != nil {
		return models.ResolveResult{}, err
	}

	return models.ResolveResult{
		PlanID:      plan.ID,
		Variant:     variant.Name,
		Settings:    cfg.Plain(req.Reveal),
		Origins:     cfg.Origins(),
		Fingerprint: plan.Fingerprint,
	}, nil
}

func (s *resolveService) ResolveFragments(ctx context.Context, variant models.Variant, fragments []models.Fragment, record bool) (models.ResolvedConfig, string, error) {
	cfg, plan, err := s.resolve(ctx, variant, fragments, record)
	if err != nil {
		return models.ResolvedConfig{}, "", err
	}
	return cfg, plan.ID, nil
}

// resolve returns the resolved config and the plan describing it. The plan
// carries an id only when it was recorded.
func (s *resolveService) resolve(ctx context.Context, variant models.Variant, fragments []models.Fragment, record bool) (models.ResolvedConfig, models.BuildPlan, error) {
	log := logger.FromContext(ctx)

	if record && s.plans == nil {
		return models.ResolvedConfig{}, models.BuildPlan{}, ErrRecordingDisabled
	}

	cfg, err := s.resolver.Resolve(variant, fragments...)
	if err != nil {
		log.Info().Err(err).
			Str("variant", variant.Name).
			Int("fragments", len(fragments)).
			Msg("resolution failed")
		return models.ResolvedConfig{}, models.BuildPlan{}, err
	}
	if err = resolver.Check(cfg); err != nil {
		log.Info().Err(err).Str("variant", variant.Name).Msg("resolved config failed lint")
		return models.ResolvedConfig{}, models.BuildPlan{}, err
	}

	caller, _ := utils.GetCallerFromContext(ctx)
	plan := models.BuildPlan{
		Variant:     variant.Name,
		Settings:    cfg.Plain(false),
		Origins:     cfg.Origins(),
		Fingerprint: utils.CredentialFingerprint(cfg.Signing(), s.fingerprintSalt),
		RequestedBy: caller,
		CreatedAt:   s.now().UTC(),
	}
	if !record {
		return cfg, plan, nil
	}

	plan.ID = s.ids.Generate()
	if err = s.plans.SavePlan(ctx, plan); err != nil {
		log.Err(err).Str("plan_id", plan.ID).Msg("failed to record build plan")
		return models.ResolvedConfig{}, models.BuildPlan{}, fmt.Errorf("failed to record build plan: %w", err)
	}
	log.Info().Str("plan_id", plan.ID).Str("variant", plan.Variant).Str("requested_by", caller).Msg("build plan recorded")

	return cfg, plan, nil
}

func (s *resolveService) Variants(ctx context.Context) []models.Variant {
	return models.BuiltinVariants()
}

func (s *resolveService) variant(req models.ResolveRequest) (models.Variant, error) {
	if req.VariantSpec != nil {
		v := *req.VariantSpec
		if v.Name == "" {
			v.Name = req.Variant
		}
		if v.Name == "" {
			return models.Variant{}, fmt.Errorf("%w: variant_spec without a name", ErrInvalidDataProvided)
		}
		return v, nil
	}

	if req.Variant == "" {
		return models.Variant{}, fmt.Errorf("%w: no variant given", ErrInvalidDataProvided)
	}

	v, ok := models.BuiltinVariant(req.Variant)
	if !ok {
		return models.Variant{}, fmt.Errorf("%w: %q", resolver.ErrUnknownVariant, req.Variant)
	}
	return v, nil
}

func (s *resolveService) fragments(inputs []models.FragmentInput) ([]models.Fragment, error) {
	schema := s.resolver.Schema()
	fragments := make([]models.Fragment, 0, len(inputs))

	var errs []error
	for i, in := range inputs {
		name := in.Name
		if name == "" {
			name = fmt.Sprintf("request[%d]", i)
		}

		f, err := schema.FragmentFromAny(name, models.SourceRequest, in.Values)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fragments = append(fragments, f)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return fragments, nil
}
