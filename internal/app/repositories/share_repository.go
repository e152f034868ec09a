package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/dberrors"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
)

var shareColumns = []string{
	"id", "student_id", "payment_name", "year", "amount",
	"payment_date", "payment_method", "payment_type", "status", "created_at",
}

// ShareRepository handles share (fee installment) database operations
type ShareRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewShareRepository creates a new ShareRepository
func NewShareRepository(db *pgxpool.Pool) *ShareRepository {
	return &ShareRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanShare(row pgx.Row) (*models.Share, error) {
	s := &models.Share{}
	err := row.Scan(
		&s.ID, &s.StudentID, &s.PaymentName, &s.Year, &s.Amount,
		&s.PaymentDate, &s.PaymentMethod, &s.PaymentType, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateShare creates a new share
func (r *ShareRepository) CreateShare(ctx context.Context, share *models.Share) (int64, error) {
	sql, args, err := r.sb.Insert("shares").
		Columns("student_id", "payment_name", "year", "amount",
			"payment_date", "payment_method", "payment_type", "status").
		Values(share.StudentID, share.PaymentName, share.Year, share.Amount,
			share.PaymentDate, share.PaymentMethod, share.PaymentType, share.Status).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create share SQL")
		return 0, fmt.Errorf("failed to build create share query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", share.StudentID).Msg("Error executing create share query")
		return 0, fmt.Errorf("error creating share: %w", err)
	}

	return id, nil
}

// GetShareByID retrieves a share by ID
func (r *ShareRepository) GetShareByID(ctx context.Context, id int64) (*models.Share, error) {
	sql, args, err := r.sb.Select(shareColumns...).
		From("shares").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get share by ID SQL")
		return nil, fmt.Errorf("failed to build get share query: %w", err)
	}

	share, err := scanShare(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShareNotFound
		}
		logger.Error().Err(err).Int64("shareID", id).Msg("Error scanning share row")
		return nil, fmt.Errorf("error getting share by ID: %w", err)
	}

	return share, nil
}

// GetSharesByStudent retrieves every share belonging to one student. The
// enablement calculator runs over this result set.
func (r *ShareRepository) GetSharesByStudent(ctx context.Context, studentID int64) ([]models.Share, error) {
	sql, args, err := r.sb.Select(shareColumns...).
		From("shares").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("year ASC", "id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get shares by student SQL")
		return nil, fmt.Errorf("failed to build get shares by student query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing get shares by student query")
		return nil, fmt.Errorf("error querying shares: %w", err)
	}
	defer rows.Close()

	shares := []models.Share{}
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning share row: %w", err)
		}
		shares = append(shares, *share)
	}

	return shares, rows.Err()
}

// GetAllShares retrieves shares, optionally filtered by status, with the
// owning student's name attached for listing.
func (r *ShareRepository) GetAllShares(ctx context.Context, status string) ([]*models.Share, error) {
	builder := r.sb.Select(
		"s.id", "s.student_id", "s.payment_name", "s.year", "s.amount",
		"s.payment_date", "s.payment_method", "s.payment_type", "s.status", "s.created_at",
		"st.name", "st.last_name", "st.dni").
		From("shares s").
		Join("students st ON st.id = s.student_id").
		OrderBy("s.year ASC", "s.payment_name ASC", "st.last_name ASC")

	if status != "" {
		builder = builder.Where(squirrel.Eq{"s.status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all shares SQL")
		return nil, fmt.Errorf("failed to build get all shares query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all shares query")
		return nil, fmt.Errorf("error querying shares: %w", err)
	}
	defer rows.Close()

	shares := []*models.Share{}
	for rows.Next() {
		s := &models.Share{Student: &models.Student{}}
		err := rows.Scan(
			&s.ID, &s.StudentID, &s.PaymentName, &s.Year, &s.Amount,
			&s.PaymentDate, &s.PaymentMethod, &s.PaymentType, &s.Status, &s.CreatedAt,
			&s.Student.Name, &s.Student.LastName, &s.Student.DNI,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning share row: %w", err)
		}
		s.Student.ID = s.StudentID
		shares = append(shares, s)
	}

	return shares, rows.Err()
}

// UpdateShare updates an existing share
func (r *ShareRepository) UpdateShare(ctx context.Context, share *models.Share) error {
	sql, args, err := r.sb.Update("shares").
		SetMap(map[string]interface{}{
			"payment_name":   share.PaymentName,
			"year":           share.Year,
			"amount":         share.Amount,
			"payment_date":   share.PaymentDate,
			"payment_method": share.PaymentMethod,
			"payment_type":   share.PaymentType,
			"status":         share.Status,
		}).
		Where(squirrel.Eq{"id": share.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update share SQL")
		return fmt.Errorf("failed to build update share query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("shareID", share.ID).Msg("Error executing update share query")
		return fmt.Errorf("error updating share: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrShareNotFound
	}

	return nil
}

// DeleteShare deletes a share and returns the owning student id so the
// caller can recompute that student's enablement.
func (r *ShareRepository) DeleteShare(ctx context.Context, id int64) (int64, error) {
	sql, args, err := r.sb.Delete("shares").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING student_id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete share SQL")
		return 0, fmt.Errorf("failed to build delete share query: %w", err)
	}

	var studentID int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrShareNotFound
		}
		logger.Error().Err(err).Int64("shareID", id).Msg("Error executing delete share query")
		return 0, fmt.Errorf("error deleting share: %w", err)
	}

	return studentID, nil
}

// CreateForActiveStudents inserts one pending share for every active
// student that does not already have the named period. Returns the ids of
// the students that received a share.
func (r *ShareRepository) CreateForActiveStudents(ctx context.Context, paymentName string, year int) ([]int64, error) {
	// Built by hand: squirrel's INSERT ... SELECT support does not cover
	// the NOT EXISTS correlation cleanly.
	sql := `
		INSERT INTO shares (student_id, payment_name, year, status)
		SELECT st.id, $1, $2, 'Pendiente'
		FROM students st
		WHERE st.status = 'Activo'
		  AND NOT EXISTS (
			SELECT 1 FROM shares sh
			WHERE sh.student_id = st.id
			  AND sh.payment_name = $1
			  AND sh.year = $2
		  )
		RETURNING student_id`

	rows, err := r.db.Query(ctx, sql, paymentName, year)
	if err != nil {
		logger.Error().Err(err).Str("paymentName", paymentName).Int("year", year).Msg("Error executing massive share creation")
		return nil, fmt.Errorf("error creating shares for active students: %w", err)
	}
	defer rows.Close()

	studentIDs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning created share row: %w", err)
		}
		studentIDs = append(studentIDs, id)
	}

	return studentIDs, rows.Err()
}
