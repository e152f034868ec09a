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

// StudentFilter narrows list queries. Zero values mean "no filter".
type StudentFilter struct {
	Status   string
	Category string
	Enabled  *bool
}

// studentColumns is the canonical column order used by every select.
var studentColumns = []string{
	"id", "name", "last_name", "dni", "birth_date", "address",
	"mother_name", "father_name", "mother_phone", "father_phone", "email",
	"category", "school", "sex", "status", "is_enabled",
	"profile_image", "archived", "archived_names", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.LastName, &s.DNI, &s.BirthDate, &s.Address,
		&s.MotherName, &s.FatherName, &s.MotherPhone, &s.FatherPhone, &s.Email,
		&s.Category, &s.School, &s.Sex, &s.Status, &s.IsEnabled,
		&s.ProfileImage, &s.Archived, &s.ArchivedNames, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateStudent inserts a single student
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "last_name", "dni", "birth_date", "address",
			"mother_name", "father_name", "mother_phone", "father_phone", "email",
			"category", "school", "sex", "status", "is_enabled",
			"profile_image", "archived", "archived_names").
		Values(student.Name, student.LastName, student.DNI, student.BirthDate, student.Address,
			student.MotherName, student.FatherName, student.MotherPhone, student.FatherPhone, student.Email,
			student.Category, student.School, student.Sex, student.Status, student.IsEnabled,
			student.ProfileImage, student.Archived, student.ArchivedNames).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_dni_key") {
			return 0, apperrors.ErrDNIAlreadyExists
		}
		logger.Error().Err(err).Str("dni", student.DNI).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// CreateStudents inserts a validated batch in one statement and fills in
// the generated ids. Used by the spreadsheet import.
func (r *StudentRepository) CreateStudents(ctx context.Context, students []*models.Student) error {
	if len(students) == 0 {
		return nil
	}

	builder := r.sb.Insert("students").
		Columns("name", "last_name", "dni", "birth_date", "address",
			"mother_name", "father_name", "mother_phone", "father_phone", "email",
			"category", "school", "sex", "status", "is_enabled",
			"profile_image", "archived", "archived_names")
	for _, s := range students {
		builder = builder.Values(s.Name, s.LastName, s.DNI, s.BirthDate, s.Address,
			s.MotherName, s.FatherName, s.MotherPhone, s.FatherPhone, s.Email,
			s.Category, s.School, s.Sex, s.Status, s.IsEnabled,
			s.ProfileImage, s.Archived, s.ArchivedNames)
	}

	sql, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building batch create students SQL")
		return fmt.Errorf("failed to build batch create students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrDNIAlreadyExists
		}
		logger.Error().Err(err).Int("count", len(students)).Msg("Error executing batch create students query")
		return fmt.Errorf("error creating students: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(students) {
			break
		}
		if err := rows.Scan(&students[i].ID); err != nil {
			return fmt.Errorf("error scanning inserted student id: %w", err)
		}
		i++
	}

	return rows.Err()
}

// GetStudentByID retrieves a student by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// GetAllStudents retrieves students matching the filter
func (r *StudentRepository) GetAllStudents(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("last_name ASC", "name ASC")

	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Category != "" {
		builder = builder.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Enabled != nil {
		builder = builder.Where(squirrel.Eq{"is_enabled": *filter.Enabled})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all students SQL")
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during get all")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// UpdateStudent updates an existing student
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":           student.Name,
			"last_name":      student.LastName,
			"dni":            student.DNI,
			"birth_date":     student.BirthDate,
			"address":        student.Address,
			"mother_name":    student.MotherName,
			"father_name":    student.FatherName,
			"mother_phone":   student.MotherPhone,
			"father_phone":   student.FatherPhone,
			"email":          student.Email,
			"category":       student.Category,
			"school":         student.School,
			"sex":            student.Sex,
			"status":         student.Status,
			"profile_image":  student.ProfileImage,
			"archived":       student.Archived,
			"archived_names": student.ArchivedNames,
			"updated_at":     squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_dni_key") {
			return apperrors.ErrDNIAlreadyExists
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SetEnabled persists the derived enablement flag for one student.
func (r *StudentRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	sql, args, err := r.sb.Update("students").
		Set("is_enabled", enabled).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building set enabled SQL")
		return fmt.Errorf("failed to build set enabled query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing set enabled query")
		return fmt.Errorf("error setting enabled flag: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteStudent deletes a student; share rows go away through the foreign
// key cascade.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// GetExistingDNIs returns the set of dni values already stored. The import
// checks candidate rows against it before inserting.
func (r *StudentRepository) GetExistingDNIs(ctx context.Context) (map[string]bool, error) {
	sql, args, err := r.sb.Select("dni").From("students").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get dnis query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get dnis query")
		return nil, fmt.Errorf("error querying dnis: %w", err)
	}
	defer rows.Close()

	dnis := map[string]bool{}
	for rows.Next() {
		var dni string
		if err := rows.Scan(&dni); err != nil {
			return nil, fmt.Errorf("error scanning dni row: %w", err)
		}
		dnis[dni] = true
	}

	return dnis, rows.Err()
}

// GetRegisteredEmails returns the distinct non-null student emails. The
// notification dispatch validates recipients against this roster.
func (r *StudentRepository) GetRegisteredEmails(ctx context.Context) ([]string, error) {
	sql, args, err := r.sb.Select("DISTINCT email").
		From("students").
		Where("email IS NOT NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get emails query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get registered emails query")
		return nil, fmt.Errorf("error querying registered emails: %w", err)
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("error scanning email row: %w", err)
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}
