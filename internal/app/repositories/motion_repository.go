package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
)

var motionColumns = []string{
	"id", "concept", "date", "amount", "payment_method", "income_type", "location", "created_at",
}

// MotionFilter narrows ledger queries. A zero time means "no bound".
type MotionFilter struct {
	Date     time.Time
	From     time.Time
	To       time.Time
	Location string
}

// MotionRepository handles cash ledger database operations
type MotionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMotionRepository creates a new MotionRepository
func NewMotionRepository(db *pgxpool.Pool) *MotionRepository {
	return &MotionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMotion(row pgx.Row) (*models.Motion, error) {
	m := &models.Motion{}
	err := row.Scan(&m.ID, &m.Concept, &m.Date, &m.Amount, &m.PaymentMethod, &m.IncomeType, &m.Location, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMotion creates a new ledger entry
func (r *MotionRepository) CreateMotion(ctx context.Context, motion *models.Motion) (int64, error) {
	sql, args, err := r.sb.Insert("motions").
		Columns("concept", "date", "amount", "payment_method", "income_type", "location").
		Values(motion.Concept, motion.Date, motion.Amount, motion.PaymentMethod, motion.IncomeType, motion.Location).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create motion SQL")
		return 0, fmt.Errorf("failed to build create motion query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create motion query")
		return 0, fmt.Errorf("error creating motion: %w", err)
	}

	return id, nil
}

// GetMotionByID retrieves a ledger entry by ID
func (r *MotionRepository) GetMotionByID(ctx context.Context, id int64) (*models.Motion, error) {
	sql, args, err := r.sb.Select(motionColumns...).
		From("motions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get motion query: %w", err)
	}

	motion, err := scanMotion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMotionNotFound
		}
		logger.Error().Err(err).Int64("motionID", id).Msg("Error scanning motion row")
		return nil, fmt.Errorf("error getting motion by ID: %w", err)
	}

	return motion, nil
}

// GetMotions retrieves ledger entries matching the filter
func (r *MotionRepository) GetMotions(ctx context.Context, filter MotionFilter) ([]*models.Motion, error) {
	builder := r.sb.Select(motionColumns...).
		From("motions").
		OrderBy("date DESC", "id DESC")

	if !filter.Date.IsZero() {
		dayStart := filter.Date.Truncate(24 * time.Hour)
		builder = builder.Where(squirrel.GtOrEq{"date": dayStart}).
			Where(squirrel.Lt{"date": dayStart.Add(24 * time.Hour)})
	}
	if !filter.From.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"date": filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(squirrel.LtOrEq{"date": filter.To})
	}
	if filter.Location != "" {
		builder = builder.Where(squirrel.Eq{"location": filter.Location})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get motions SQL")
		return nil, fmt.Errorf("failed to build get motions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get motions query")
		return nil, fmt.Errorf("error querying motions: %w", err)
	}
	defer rows.Close()

	motions := []*models.Motion{}
	for rows.Next() {
		motion, err := scanMotion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning motion row: %w", err)
		}
		motions = append(motions, motion)
	}

	return motions, rows.Err()
}

// UpdateMotion updates an existing ledger entry
func (r *MotionRepository) UpdateMotion(ctx context.Context, motion *models.Motion) error {
	sql, args, err := r.sb.Update("motions").
		SetMap(map[string]interface{}{
			"concept":        motion.Concept,
			"date":           motion.Date,
			"amount":         motion.Amount,
			"payment_method": motion.PaymentMethod,
			"income_type":    motion.IncomeType,
			"location":       motion.Location,
		}).
		Where(squirrel.Eq{"id": motion.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update motion SQL")
		return fmt.Errorf("failed to build update motion query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("motionID", motion.ID).Msg("Error executing update motion query")
		return fmt.Errorf("error updating motion: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMotionNotFound
	}

	return nil
}

// DeleteMotion deletes a ledger entry by ID
func (r *MotionRepository) DeleteMotion(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("motions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete motion query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("motionID", id).Msg("Error executing delete motion query")
		return fmt.Errorf("error deleting motion: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMotionNotFound
	}

	return nil
}
