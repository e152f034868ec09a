package dto

import "github.com/dparedes/leagueadmin/internal/app/models"

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Mail     string `json:"mail" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login. Tokens are also set as
// httpOnly cookies; the body copy exists for non-browser clients.
type LoginResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
	User         *models.User `json:"user"`
}

// RefreshRequest carries a refresh token when the cookie is absent.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}
