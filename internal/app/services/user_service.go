package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/auth"
	"github.com/dparedes/leagueadmin/internal/pkg/validation"
)

// userStore is the subset of the user repository used by this service.
type userStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	CountOtherActiveAdmins(ctx context.Context, excludeID int64) (int, error)
}

// UserService defines the interface for operator account management
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	UpdateUserState(ctx context.Context, id int64, state bool) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo userStore
}

// NewUserService creates a new user service instance
func NewUserService(userRepo userStore) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func validateRole(value string) (models.RoleType, error) {
	role := models.RoleType(value)
	if role != models.RoleAdmin && role != models.RoleUser {
		return "", fmt.Errorf("%w: role must be admin or user", apperrors.ErrValidationFailed)
	}
	return role, nil
}

// guardAdminInvariants rejects changes that would leave the system without
// an active admin or touch the fixed account. A user that is the only
// remaining active admin cannot be deleted, deactivated or demoted.
func (s *userServiceImpl) guardAdminInvariants(ctx context.Context, user *models.User) error {
	if user.Role != models.RoleAdmin || !user.State {
		return nil
	}

	others, err := s.userRepo.CountOtherActiveAdmins(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("error counting admins: %w", err)
	}
	if others == 0 {
		return apperrors.ErrLastAdminRemaining
	}
	return nil
}

// CreateUser creates a new operator account
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.ValidEmail(req.Mail) {
		return nil, fmt.Errorf("%w: invalid mail %q", apperrors.ErrValidationFailed, req.Mail)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidationFailed)
	}

	role := models.RoleUser
	if req.Role != "" {
		var err error
		role, err = validateRole(req.Role)
		if err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Mail:     strings.ToLower(strings.TrimSpace(req.Mail)),
		Password: hashed,
		Role:     role,
		State:    true,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrMailAlreadyExists) {
			return nil, apperrors.ErrMailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	user.ID = id
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetAllUsers retrieves all operator accounts
func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// UpdateUser applies edits to an operator account. The fixed account cannot
// be demoted, and the last active admin cannot lose the admin role.
func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role, err := validateRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if role != user.Role {
			if user.Fixed {
				return nil, apperrors.ErrUserFixed
			}
			if role != models.RoleAdmin {
				if err := s.guardAdminInvariants(ctx, user); err != nil {
					return nil, err
				}
			}
			user.Role = role
		}
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
		}
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Mail != nil {
		if !validation.ValidEmail(*req.Mail) {
			return nil, fmt.Errorf("%w: invalid mail %q", apperrors.ErrValidationFailed, *req.Mail)
		}
		user.Mail = strings.ToLower(strings.TrimSpace(*req.Mail))
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidationFailed)
		}
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrMailAlreadyExists) {
			return nil, apperrors.ErrMailAlreadyExists
		}
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// UpdateUserState flips an account between active and inactive
func (s *userServiceImpl) UpdateUserState(ctx context.Context, id int64, state bool) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.State == state {
		return user, nil
	}

	if !state {
		if user.Fixed {
			return nil, apperrors.ErrUserFixed
		}
		if err := s.guardAdminInvariants(ctx, user); err != nil {
			return nil, err
		}
	}

	user.State = state
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user state: %w", err)
	}
	return user, nil
}

// DeleteUser deletes an operator account
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Fixed {
		return apperrors.ErrUserFixed
	}
	if err := s.guardAdminInvariants(ctx, user); err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}
