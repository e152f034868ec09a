package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
	"github.com/dparedes/leagueadmin/internal/pkg/validation"
)

// shareStore is the subset of the share repository used by this service.
type shareStore interface {
	CreateShare(ctx context.Context, share *models.Share) (int64, error)
	GetShareByID(ctx context.Context, id int64) (*models.Share, error)
	GetSharesByStudent(ctx context.Context, studentID int64) ([]models.Share, error)
	GetAllShares(ctx context.Context, status string) ([]*models.Share, error)
	UpdateShare(ctx context.Context, share *models.Share) error
	DeleteShare(ctx context.Context, id int64) (int64, error)
	CreateForActiveStudents(ctx context.Context, paymentName string, year int) ([]int64, error)
}

// enablementStore persists the derived enablement flag.
type enablementStore interface {
	SetEnabled(ctx context.Context, id int64, enabled bool) error
}

// ShareService defines the interface for share-related operations
type ShareService interface {
	CreateShare(ctx context.Context, req *dto.CreateShareRequest) (*models.Share, error)
	GetShareByID(ctx context.Context, id int64) (*models.Share, error)
	GetSharesByStudent(ctx context.Context, studentID int64) ([]models.Share, error)
	GetAllShares(ctx context.Context, status string) ([]*models.Share, error)
	UpdateShare(ctx context.Context, id int64, req *dto.UpdateShareRequest) (*models.Share, error)
	DeleteShare(ctx context.Context, id int64) error
	CreateMassiveShares(ctx context.Context, req *dto.CreateMassiveSharesRequest) (*dto.CreateMassiveSharesResponse, error)
	RecalculateEnablement(ctx context.Context, studentID int64) error
}

// shareServiceImpl implements the ShareService interface
type shareServiceImpl struct {
	shareRepo   shareStore
	studentRepo enablementStore
}

// NewShareService creates a new share service instance
func NewShareService(shareRepo shareStore, studentRepo enablementStore) ShareService {
	return &shareServiceImpl{
		shareRepo:   shareRepo,
		studentRepo: studentRepo,
	}
}

// RecalculateEnablement recomputes and persists a student's enablement from
// their current shares. When the share lookup fails the flag is forced to
// false rather than left stale: a student is never reported enabled on the
// strength of shares we could not read.
func (s *shareServiceImpl) RecalculateEnablement(ctx context.Context, studentID int64) error {
	shares, err := s.shareRepo.GetSharesByStudent(ctx, studentID)
	if err != nil {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Share lookup failed, disabling student")
		return s.studentRepo.SetEnabled(ctx, studentID, false)
	}

	return s.studentRepo.SetEnabled(ctx, studentID, ComputeEnabled(shares))
}

// reconcile runs enablement recomputation after a share mutation. The
// mutation itself already succeeded, so a reconciliation failure is logged
// and swallowed instead of failing the request.
func (s *shareServiceImpl) reconcile(ctx context.Context, studentID int64) {
	if err := s.RecalculateEnablement(ctx, studentID); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to reconcile student enablement")
	}
}

// CreateShare creates a new pending share for a student
func (s *shareServiceImpl) CreateShare(ctx context.Context, req *dto.CreateShareRequest) (*models.Share, error) {
	if strings.TrimSpace(req.PaymentName) == "" {
		return nil, fmt.Errorf("%w: paymentName cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Year < 2000 || req.Year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", apperrors.ErrValidationFailed)
	}

	share := &models.Share{
		StudentID:   req.StudentID,
		PaymentName: strings.TrimSpace(req.PaymentName),
		Year:        req.Year,
		Status:      models.SharePending,
	}

	id, err := s.shareRepo.CreateShare(ctx, share)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error creating share: %w", err)
	}
	share.ID = id

	s.reconcile(ctx, share.StudentID)
	return share, nil
}

// GetShareByID retrieves a share by ID
func (s *shareServiceImpl) GetShareByID(ctx context.Context, id int64) (*models.Share, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid share ID", apperrors.ErrValidationFailed)
	}

	share, err := s.shareRepo.GetShareByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrShareNotFound) {
			return nil, apperrors.ErrShareNotFound
		}
		return nil, fmt.Errorf("error retrieving share: %w", err)
	}
	return share, nil
}

// GetSharesByStudent retrieves all shares belonging to one student
func (s *shareServiceImpl) GetSharesByStudent(ctx context.Context, studentID int64) ([]models.Share, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	shares, err := s.shareRepo.GetSharesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving shares: %w", err)
	}
	return shares, nil
}

// GetAllShares retrieves shares, optionally filtered by status
func (s *shareServiceImpl) GetAllShares(ctx context.Context, status string) ([]*models.Share, error) {
	if status != "" && status != string(models.SharePending) && status != string(models.SharePaid) {
		return nil, fmt.Errorf("%w: unknown share status %q", apperrors.ErrValidationFailed, status)
	}

	shares, err := s.shareRepo.GetAllShares(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("error retrieving shares: %w", err)
	}
	return shares, nil
}

// UpdateShare applies edits to a share. Setting a payment date marks the
// share paid; the stored status is always derived from the date so the two
// fields cannot diverge.
func (s *shareServiceImpl) UpdateShare(ctx context.Context, id int64, req *dto.UpdateShareRequest) (*models.Share, error) {
	share, err := s.GetShareByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PaymentName != nil {
		if strings.TrimSpace(*req.PaymentName) == "" {
			return nil, fmt.Errorf("%w: paymentName cannot be empty", apperrors.ErrValidationFailed)
		}
		share.PaymentName = strings.TrimSpace(*req.PaymentName)
	}
	if req.Year != nil {
		if *req.Year < 2000 || *req.Year > 2100 {
			return nil, fmt.Errorf("%w: year out of range", apperrors.ErrValidationFailed)
		}
		share.Year = *req.Year
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidationFailed)
		}
		share.Amount = req.Amount
	}
	if req.PaymentDate != nil {
		date, err := ParseDateInput(*req.PaymentDate)
		if err != nil {
			return nil, err
		}
		share.PaymentDate = &date
	}
	if req.PaymentMethod != nil {
		method := models.PaymentMethod(*req.PaymentMethod)
		if method != models.PaymentCash && method != models.PaymentTransfer {
			return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidationFailed, *req.PaymentMethod)
		}
		share.PaymentMethod = req.PaymentMethod
	}
	if req.PaymentType != nil {
		share.PaymentType = req.PaymentType
	}

	share.Status = models.DeriveStatus(share.PaymentDate)

	if err := s.shareRepo.UpdateShare(ctx, share); err != nil {
		if errors.Is(err, apperrors.ErrShareNotFound) {
			return nil, apperrors.ErrShareNotFound
		}
		return nil, fmt.Errorf("error updating share: %w", err)
	}

	s.reconcile(ctx, share.StudentID)
	return share, nil
}

// DeleteShare deletes a share by ID
func (s *shareServiceImpl) DeleteShare(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid share ID", apperrors.ErrValidationFailed)
	}

	studentID, err := s.shareRepo.DeleteShare(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrShareNotFound) {
			return apperrors.ErrShareNotFound
		}
		return fmt.Errorf("error deleting share: %w", err)
	}

	s.reconcile(ctx, studentID)
	return nil
}

// CreateMassiveShares creates one pending share for every active student
// that does not already have the named period. Students that already have
// the period are skipped, not failed.
func (s *shareServiceImpl) CreateMassiveShares(ctx context.Context, req *dto.CreateMassiveSharesRequest) (*dto.CreateMassiveSharesResponse, error) {
	if strings.TrimSpace(req.PaymentName) == "" {
		return nil, fmt.Errorf("%w: paymentName cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Year < 2000 || req.Year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", apperrors.ErrValidationFailed)
	}

	studentIDs, err := s.shareRepo.CreateForActiveStudents(ctx, strings.TrimSpace(req.PaymentName), req.Year)
	if err != nil {
		return nil, fmt.Errorf("error creating massive shares: %w", err)
	}

	for _, studentID := range studentIDs {
		s.reconcile(ctx, studentID)
	}

	return &dto.CreateMassiveSharesResponse{
		Message: fmt.Sprintf("Created %d shares for %s %d", len(studentIDs), req.PaymentName, req.Year),
		Count:   len(studentIDs),
	}, nil
}

// ParseDateInput accepts an RFC 3339 timestamp or any of the accepted
// day-first date layouts and returns the parsed time.
func ParseDateInput(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if normalized, ok := validation.NormalizeDate(value); ok {
		return time.Parse(validation.CanonicalDateFormat, normalized)
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", apperrors.ErrInvalidDateFormat, value)
}
