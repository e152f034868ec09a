package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/repositories"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/filestorage"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
	"github.com/dparedes/leagueadmin/internal/pkg/validation"
)

// studentStore is the subset of the student repository used by this service.
type studentStore interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetAllStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetAllStudents(ctx context.Context, filter *dto.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) (*dto.DeleteStudentResponse, error)
	UploadProfileImage(ctx context.Context, id int64, file *multipart.FileHeader) (*models.Student, error)
	UploadArchivedFile(ctx context.Context, id int64, file *multipart.FileHeader, displayName string) (*models.Student, error)
	DeleteArchivedFile(ctx context.Context, id int64, index int) (*models.Student, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo studentStore
	storage     filestorage.FileStorage
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo studentStore, storage filestorage.FileStorage) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		storage:     storage,
	}
}

func validateSex(value string) (models.Sex, error) {
	sex := models.Sex(value)
	if sex != models.SexFemale && sex != models.SexMale {
		return "", apperrors.ErrInvalidSex
	}
	return sex, nil
}

func validateStudentStatus(value string) (models.StudentStatus, error) {
	status := models.StudentStatus(value)
	if status != models.StudentActive && status != models.StudentInactive {
		return "", fmt.Errorf("%w: status must be Activo or Inactivo", apperrors.ErrValidationFailed)
	}
	return status, nil
}

// CreateStudent validates and creates a single student. New students start
// with no shares, so enablement is false.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if !validation.ValidDNI(req.DNI) {
		return nil, apperrors.ErrInvalidDNI
	}
	if !validation.ValidPhone(req.MotherPhone) || !validation.ValidPhone(req.FatherPhone) {
		return nil, apperrors.ErrInvalidPhone
	}
	sex, err := validateSex(req.Sex)
	if err != nil {
		return nil, err
	}

	birthDate, ok := validation.NormalizeDate(req.BirthDate)
	if !ok {
		return nil, fmt.Errorf("%w: birthDate %q", apperrors.ErrInvalidDateFormat, req.BirthDate)
	}

	status := models.StudentActive
	if req.Status != "" {
		status, err = validateStudentStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}

	var email *string
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		trimmed := strings.TrimSpace(*req.Email)
		if !validation.ValidEmail(trimmed) {
			return nil, fmt.Errorf("%w: invalid email %q", apperrors.ErrValidationFailed, trimmed)
		}
		email = &trimmed
	}

	student := &models.Student{
		Name:        strings.TrimSpace(req.Name),
		LastName:    strings.TrimSpace(req.LastName),
		DNI:         req.DNI,
		BirthDate:   birthDate,
		Address:     strings.TrimSpace(req.Address),
		MotherName:  strings.TrimSpace(req.MotherName),
		FatherName:  strings.TrimSpace(req.FatherName),
		MotherPhone: req.MotherPhone,
		FatherPhone: req.FatherPhone,
		Email:       email,
		Category:    strings.TrimSpace(req.Category),
		School:      strings.TrimSpace(req.School),
		Sex:         sex,
		Status:      status,
		IsEnabled:   false,
	}

	id, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		if errors.Is(err, apperrors.ErrDNIAlreadyExists) {
			return nil, apperrors.ErrDNIAlreadyExists
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	student.ID = id
	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetAllStudents retrieves students matching the filter
func (s *studentServiceImpl) GetAllStudents(ctx context.Context, filter *dto.StudentFilter) ([]*models.Student, error) {
	if filter.Status != "" {
		if _, err := validateStudentStatus(filter.Status); err != nil {
			return nil, err
		}
	}

	students, err := s.studentRepo.GetAllStudents(ctx, repositories.StudentFilter{
		Status:   filter.Status,
		Category: filter.Category,
		Enabled:  filter.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// UpdateStudent applies edits to a student. Enablement is never set here;
// it only moves through share reconciliation.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.DNI != nil {
		if !validation.ValidDNI(*req.DNI) {
			return nil, apperrors.ErrInvalidDNI
		}
		student.DNI = *req.DNI
	}
	if req.BirthDate != nil {
		birthDate, ok := validation.NormalizeDate(*req.BirthDate)
		if !ok {
			return nil, fmt.Errorf("%w: birthDate %q", apperrors.ErrInvalidDateFormat, *req.BirthDate)
		}
		student.BirthDate = birthDate
	}
	if req.Address != nil {
		student.Address = strings.TrimSpace(*req.Address)
	}
	if req.MotherName != nil {
		student.MotherName = strings.TrimSpace(*req.MotherName)
	}
	if req.FatherName != nil {
		student.FatherName = strings.TrimSpace(*req.FatherName)
	}
	if req.MotherPhone != nil {
		if !validation.ValidPhone(*req.MotherPhone) {
			return nil, apperrors.ErrInvalidPhone
		}
		student.MotherPhone = *req.MotherPhone
	}
	if req.FatherPhone != nil {
		if !validation.ValidPhone(*req.FatherPhone) {
			return nil, apperrors.ErrInvalidPhone
		}
		student.FatherPhone = *req.FatherPhone
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		if trimmed == "" {
			student.Email = nil
		} else {
			if !validation.ValidEmail(trimmed) {
				return nil, fmt.Errorf("%w: invalid email %q", apperrors.ErrValidationFailed, trimmed)
			}
			student.Email = &trimmed
		}
	}
	if req.Category != nil {
		student.Category = strings.TrimSpace(*req.Category)
	}
	if req.School != nil {
		student.School = strings.TrimSpace(*req.School)
	}
	if req.Sex != nil {
		sex, err := validateSex(*req.Sex)
		if err != nil {
			return nil, err
		}
		student.Sex = sex
	}
	if req.Status != nil {
		status, err := validateStudentStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		student.Status = status
	}

	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrDNIAlreadyExists) {
			return nil, apperrors.ErrDNIAlreadyExists
		}
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return student, nil
}

// DeleteStudent deletes a student. Shares go with the row via the database
// cascade; stored media is removed best-effort afterwards, and per-file
// failures are reported without failing the delete.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) (*dto.DeleteStudentResponse, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.DeleteStudent(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error deleting student: %w", err)
	}

	var fileErrors []string
	if student.ProfileImage != nil {
		if err := s.storage.DeleteFile(*student.ProfileImage); err != nil {
			logger.Warn().Err(err).Str("file", *student.ProfileImage).Msg("Failed to delete profile image")
			fileErrors = append(fileErrors, fmt.Sprintf("profile image: %v", err))
		}
	}
	for _, archived := range student.Archived {
		if err := s.storage.DeleteFile(archived); err != nil {
			logger.Warn().Err(err).Str("file", archived).Msg("Failed to delete archived file")
			fileErrors = append(fileErrors, fmt.Sprintf("archived file %s: %v", archived, err))
		}
	}

	return &dto.DeleteStudentResponse{
		Message: "Student deleted successfully",
		Errors:  fileErrors,
	}, nil
}

// UploadProfileImage stores a new profile image and replaces the previous
// one. The old file is removed best-effort after the record is updated.
func (s *studentServiceImpl) UploadProfileImage(ctx context.Context, id int64, file *multipart.FileHeader) (*models.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveFileWithPath(file, "students/profiles")
	if err != nil {
		return nil, fmt.Errorf("error storing profile image: %w", err)
	}

	oldImage := student.ProfileImage
	student.ProfileImage = &url

	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	if oldImage != nil {
		if err := s.storage.DeleteFile(*oldImage); err != nil {
			logger.Warn().Err(err).Str("file", *oldImage).Msg("Failed to delete replaced profile image")
		}
	}
	return student, nil
}

// UploadArchivedFile attaches a document to a student, up to the per-student
// limit.
func (s *studentServiceImpl) UploadArchivedFile(ctx context.Context, id int64, file *multipart.FileHeader, displayName string) (*models.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(student.Archived) >= models.MaxArchivedFiles {
		return nil, apperrors.ErrTooManyArchivedFiles
	}

	url, err := s.storage.SaveFileWithPath(file, "students/archived")
	if err != nil {
		return nil, fmt.Errorf("error storing archived file: %w", err)
	}

	if strings.TrimSpace(displayName) == "" {
		displayName = file.Filename
	}
	student.Archived = append(student.Archived, url)
	student.ArchivedNames = append(student.ArchivedNames, displayName)

	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return student, nil
}

// DeleteArchivedFile removes the archived document at the given index
func (s *studentServiceImpl) DeleteArchivedFile(ctx context.Context, id int64, index int) (*models.Student, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(student.Archived) {
		return nil, fmt.Errorf("%w: archived file index out of range", apperrors.ErrValidationFailed)
	}

	removed := student.Archived[index]
	student.Archived = append(student.Archived[:index], student.Archived[index+1:]...)
	if index < len(student.ArchivedNames) {
		student.ArchivedNames = append(student.ArchivedNames[:index], student.ArchivedNames[index+1:]...)
	}

	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	if err := s.storage.DeleteFile(removed); err != nil {
		logger.Warn().Err(err).Str("file", removed).Msg("Failed to delete archived file")
	}
	return student, nil
}
