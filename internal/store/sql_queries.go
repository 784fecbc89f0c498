// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-build-keeper/models"
)

const planTable = "build_plans"

var planColumns = []string{
	"id", "variant", "settings", "origins", "fingerprint", "requested_by", "created_at",
}

func (p *planRepository) buildInsertPlanQuery(plan models.BuildPlan, settings, origins []byte) (string, []any, error) {
	query, args, err := p.builder().
		Insert(planTable).
		Columns(planColumns...).
		Values(
			plan.ID,
			plan.Variant,
			string(settings),
			string(origins),
			plan.Fingerprint,
			plan.RequestedBy,
			plan.CreatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func (p *planRepository) buildGetPlanQuery(id string) (string, []any, error) {
	query, args, err := p.builder().
		Select(planColumns...).
		From(planTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func (p *planRepository) buildListPlansQuery(filter models.PlanFilter) (string, []any, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = models.DefaultPlanListLimit
	}

	builder := p.builder().
		Select(planColumns...).
		From(planTable)

	if filter.Variant != "" {
		builder = builder.Where(sq.Eq{"variant": filter.Variant})
	}

	query, args, err := builder.
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func (p *planRepository) buildDeletePlansQuery(olderThan time.Time) (string, []any, error) {
	query, args, err := p.builder().
		Delete(planTable).
		Where(sq.Lt{"created_at": olderThan.UTC()}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
