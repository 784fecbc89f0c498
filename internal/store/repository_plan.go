package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/models"
)

// planRepository is the database/sql implementation of [PlanRepository].
// It works against both PostgreSQL and SQLite; the dialect only changes the
// placeholder format and the error classifier.
type planRepository struct {
	*DB
	logger *logger.Logger
}

// NewPlanRepository constructs a [PlanRepository] backed by db.
func NewPlanRepository(db *DB, logger *logger.Logger) PlanRepository {
	return &planRepository{
		DB:     db,
		logger: logger,
	}
}

// SavePlan inserts plan. Settings and origins are stored as JSON documents.
func (p *planRepository) SavePlan(ctx context.Context, plan models.BuildPlan) error {
	log := logger.FromContext(ctx)

	settings, err := json.Marshal(plan.Settings)
	if err != nil {
		return fmt.Errorf("%w: settings: %w", ErrEncodingPlan, err)
	}
	origins, err := json.Marshal(plan.Origins)
	if err != nil {
		return fmt.Errorf("%w: origins: %w", ErrEncodingPlan, err)
	}

	query, args, err := p.buildInsertPlanQuery(plan, settings, origins)
	if err != nil {
		log.Err(err).Str("func", "planRepository.SavePlan").Msg("failed to create query")
		return err
	}

	if _, err = p.DB.ExecContext(ctx, query, args...); err != nil {
		if p.errorClassificator.IsUniqueViolation(err) {
			return fmt.Errorf("%w: id=%s", ErrPlanAlreadyExists, plan.ID)
		}
		log.Err(err).
			Str("func", "planRepository.SavePlan").
			Str("plan_id", plan.ID).
			Bool("retryable", p.Retryable(err)).
			Msg("failed to insert build plan")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetPlan returns the plan with the given id.
func (p *planRepository) GetPlan(ctx context.Context, id string) (models.BuildPlan, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.buildGetPlanQuery(id)
	if err != nil {
		log.Err(err).Str("func", "planRepository.GetPlan").Msg("failed to create query")
		return models.BuildPlan{}, err
	}

	plan, err := scanPlan(p.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.BuildPlan{}, fmt.Errorf("%w: id=%s", ErrPlanNotFound, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "planRepository.GetPlan").
			Str("plan_id", id).
			Msg("failed to scan build plan row")
		return models.BuildPlan{}, err
	}

	return plan, nil
}

// ListPlans returns plans newest first. A zero filter.Limit means
// [models.DefaultPlanListLimit].
func (p *planRepository) ListPlans(ctx context.Context, filter models.PlanFilter) ([]models.BuildPlan, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.buildListPlansQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "planRepository.ListPlans").Msg("failed to create query")
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "planRepository.ListPlans").
			Str("variant", filter.Variant).
			Msg("failed to execute query for listing build plans")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	plans := make([]models.BuildPlan, 0, 16)
	for rows.Next() {
		plan, scanErr := scanPlan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "planRepository.ListPlans").Msg("failed to scan build plan row")
			return nil, scanErr
		}
		plans = append(plans, plan)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "planRepository.ListPlans").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return plans, nil
}

// DeletePlansOlderThan removes every plan created strictly before t.
func (p *planRepository) DeletePlansOlderThan(ctx context.Context, t time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.buildDeletePlansQuery(t)
	if err != nil {
		log.Err(err).Str("func", "planRepository.DeletePlansOlderThan").Msg("failed to create query")
		return 0, err
	}

	result, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "planRepository.DeletePlansOlderThan").
			Time("older_than", t).
			Bool("retryable", p.Retryable(err)).
			Msg("failed to delete old build plans")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (models.BuildPlan, error) {
	var (
		plan              models.BuildPlan
		settings, origins []byte
	)

	err := row.Scan(
		&plan.ID,
		&plan.Variant,
		&settings,
		&origins,
		&plan.Fingerprint,
		&plan.RequestedBy,
		&plan.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BuildPlan{}, err
	}
	if err != nil {
		return models.BuildPlan{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if plan.Settings, err = decodeSettings(settings); err != nil {
		return models.BuildPlan{}, fmt.Errorf("%w: settings of %s: %w", ErrEncodingPlan, plan.ID, err)
	}
	if err = json.Unmarshal(origins, &plan.Origins); err != nil {
		return models.BuildPlan{}, fmt.Errorf("%w: origins of %s: %w", ErrEncodingPlan, plan.ID, err)
	}
	plan.CreatedAt = plan.CreatedAt.UTC()

	return plan, nil
}

// decodeSettings restores integer settings as int64 rather than float64.
func decodeSettings(data []byte) (map[models.SettingKey]any, error) {
	raw := make(map[models.SettingKey]any)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	for key, value := range raw {
		num, ok := value.(json.Number)
		if !ok {
			continue
		}
		if i, err := num.Int64(); err == nil {
			raw[key] = i
			continue
		}
		f, err := num.Float64()
		if err != nil {
			return nil, err
		}
		raw[key] = f
	}

	return raw, nil
}
