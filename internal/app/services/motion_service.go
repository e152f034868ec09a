package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/repositories"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
)

// motionStore is the subset of the motion repository used by this service.
type motionStore interface {
	CreateMotion(ctx context.Context, motion *models.Motion) (int64, error)
	GetMotionByID(ctx context.Context, id int64) (*models.Motion, error)
	GetMotions(ctx context.Context, filter repositories.MotionFilter) ([]*models.Motion, error)
	UpdateMotion(ctx context.Context, motion *models.Motion) error
	DeleteMotion(ctx context.Context, id int64) error
}

// MotionService defines the interface for cash ledger operations
type MotionService interface {
	CreateMotion(ctx context.Context, req *dto.CreateMotionRequest) (*models.Motion, error)
	GetMotionByID(ctx context.Context, id int64) (*models.Motion, error)
	GetMotions(ctx context.Context, filter *dto.MotionFilter) ([]*models.Motion, error)
	UpdateMotion(ctx context.Context, id int64, req *dto.UpdateMotionRequest) (*models.Motion, error)
	DeleteMotion(ctx context.Context, id int64) error
}

// motionServiceImpl implements the MotionService interface
type motionServiceImpl struct {
	motionRepo motionStore
}

// NewMotionService creates a new motion service instance
func NewMotionService(motionRepo motionStore) MotionService {
	return &motionServiceImpl{motionRepo: motionRepo}
}

func validatePaymentMethod(value string) error {
	method := models.PaymentMethod(value)
	if method != models.PaymentCash && method != models.PaymentTransfer {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidationFailed, value)
	}
	return nil
}

func validateIncomeType(value string) error {
	income := models.IncomeType(value)
	if income != models.IncomeIn && income != models.IncomeOut {
		return fmt.Errorf("%w: unknown income type %q", apperrors.ErrValidationFailed, value)
	}
	return nil
}

// CreateMotion creates a new cash ledger entry
func (s *motionServiceImpl) CreateMotion(ctx context.Context, req *dto.CreateMotionRequest) (*models.Motion, error) {
	if strings.TrimSpace(req.Concept) == "" {
		return nil, fmt.Errorf("%w: concept cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidationFailed)
	}
	if err := validatePaymentMethod(req.PaymentMethod); err != nil {
		return nil, err
	}
	if err := validateIncomeType(req.IncomeType); err != nil {
		return nil, err
	}
	if !models.ValidLocation(req.Location) {
		return nil, apperrors.ErrInvalidLocation
	}

	date, err := ParseDateInput(req.Date)
	if err != nil {
		return nil, err
	}

	motion := &models.Motion{
		Concept:       strings.TrimSpace(req.Concept),
		Date:          date,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		IncomeType:    models.IncomeType(req.IncomeType),
		Location:      req.Location,
	}

	id, err := s.motionRepo.CreateMotion(ctx, motion)
	if err != nil {
		return nil, fmt.Errorf("error creating motion: %w", err)
	}
	motion.ID = id
	return motion, nil
}

// GetMotionByID retrieves a motion by ID
func (s *motionServiceImpl) GetMotionByID(ctx context.Context, id int64) (*models.Motion, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid motion ID", apperrors.ErrValidationFailed)
	}

	motion, err := s.motionRepo.GetMotionByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrMotionNotFound) {
			return nil, apperrors.ErrMotionNotFound
		}
		return nil, fmt.Errorf("error retrieving motion: %w", err)
	}
	return motion, nil
}

// GetMotions retrieves motions matching the given filter. Date selects one
// day and wins over From/To when both are present.
func (s *motionServiceImpl) GetMotions(ctx context.Context, filter *dto.MotionFilter) ([]*models.Motion, error) {
	var repoFilter repositories.MotionFilter

	if filter.Date != "" {
		date, err := ParseDateInput(filter.Date)
		if err != nil {
			return nil, err
		}
		repoFilter.Date = date
	} else {
		if filter.From != "" {
			from, err := ParseDateInput(filter.From)
			if err != nil {
				return nil, err
			}
			repoFilter.From = from
		}
		if filter.To != "" {
			to, err := ParseDateInput(filter.To)
			if err != nil {
				return nil, err
			}
			repoFilter.To = to
		}
	}

	if filter.Location != "" {
		if !models.ValidLocation(filter.Location) {
			return nil, apperrors.ErrInvalidLocation
		}
		repoFilter.Location = filter.Location
	}

	motions, err := s.motionRepo.GetMotions(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving motions: %w", err)
	}
	return motions, nil
}

// UpdateMotion applies edits to a ledger entry
func (s *motionServiceImpl) UpdateMotion(ctx context.Context, id int64, req *dto.UpdateMotionRequest) (*models.Motion, error) {
	motion, err := s.GetMotionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Concept != nil {
		if strings.TrimSpace(*req.Concept) == "" {
			return nil, fmt.Errorf("%w: concept cannot be empty", apperrors.ErrValidationFailed)
		}
		motion.Concept = strings.TrimSpace(*req.Concept)
	}
	if req.Date != nil {
		date, err := ParseDateInput(*req.Date)
		if err != nil {
			return nil, err
		}
		motion.Date = date
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidationFailed)
		}
		motion.Amount = *req.Amount
	}
	if req.PaymentMethod != nil {
		if err := validatePaymentMethod(*req.PaymentMethod); err != nil {
			return nil, err
		}
		motion.PaymentMethod = models.PaymentMethod(*req.PaymentMethod)
	}
	if req.IncomeType != nil {
		if err := validateIncomeType(*req.IncomeType); err != nil {
			return nil, err
		}
		motion.IncomeType = models.IncomeType(*req.IncomeType)
	}
	if req.Location != nil {
		if !models.ValidLocation(*req.Location) {
			return nil, apperrors.ErrInvalidLocation
		}
		motion.Location = *req.Location
	}

	if err := s.motionRepo.UpdateMotion(ctx, motion); err != nil {
		if errors.Is(err, apperrors.ErrMotionNotFound) {
			return nil, apperrors.ErrMotionNotFound
		}
		return nil, fmt.Errorf("error updating motion: %w", err)
	}
	return motion, nil
}

// DeleteMotion deletes a motion by ID
func (s *motionServiceImpl) DeleteMotion(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid motion ID", apperrors.ErrValidationFailed)
	}

	err := s.motionRepo.DeleteMotion(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrMotionNotFound) {
			return apperrors.ErrMotionNotFound
		}
		return fmt.Errorf("error deleting motion: %w", err)
	}
	return nil
}
