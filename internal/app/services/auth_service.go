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
	"github.com/dparedes/leagueadmin/internal/pkg/auth"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
)

// authUserStore is the user lookup surface needed for authentication.
type authUserStore interface {
	GetUserByMail(ctx context.Context, mail string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// authTokenStore persists opaque refresh tokens.
type authTokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteUserTokens(ctx context.Context, userID int64) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   authUserStore
	tokenRepo  authTokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo authUserStore, tokenRepo authTokenStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// issueTokens generates a token pair for the user and stores the refresh
// token.
func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User, message string) (*dto.LoginResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.LoginResponse{
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         user,
	}, nil
}

// Login authenticates credentials and issues a token pair. Unknown mail and
// wrong password produce the same error so the response does not reveal
// which accounts exist.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	mail := strings.ToLower(strings.TrimSpace(req.Mail))

	user, err := s.userRepo.GetUserByMail(ctx, mail)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error during login: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("mail", mail).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.State {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueTokens(ctx, user, "Login successful")
}

// Refresh rotates a refresh token: the presented token is consumed and a
// new pair is issued.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrTokenNotFound
	}

	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) || errors.Is(err, apperrors.ErrTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("error validating refresh token: %w", err)
	}

	if err := s.tokenRepo.DeleteToken(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return nil, fmt.Errorf("error rotating refresh token: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if !user.State {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueTokens(ctx, user, "Token refreshed")
}

// Logout deletes the presented refresh token. An already-absent token is
// treated as a successful logout.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := s.tokenRepo.DeleteToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return fmt.Errorf("error during logout: %w", err)
	}
	return nil
}
