package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/services"
	"github.com/dparedes/leagueadmin/internal/middleware"
	"github.com/dparedes/leagueadmin/internal/pkg/auth"
)

// refreshCookieMaxAge keeps the refresh cookie alive for 30 days, matching
// the default refresh token expiration.
const refreshCookieMaxAge = 30 * 24 * int(time.Hour/time.Second)

// AuthController handles login, token refresh and logout
type AuthController struct {
	authService services.AuthService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
	}
}

// setAuthCookies stores both tokens as httpOnly cookies for browser
// clients. The same tokens travel in the response body for everyone else.
func (c *AuthController) setAuthCookies(ctx *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := int(c.jwtService.GetAccessTokenExp().Seconds())
	ctx.SetCookie("accessToken", accessToken, accessMaxAge, "/", "", false, true)
	ctx.SetCookie("refreshToken", refreshToken, refreshCookieMaxAge, "/", "", false, true)
}

func (c *AuthController) clearAuthCookies(ctx *gin.Context) {
	ctx.SetCookie("accessToken", "", -1, "/", "", false, true)
	ctx.SetCookie("refreshToken", "", -1, "/", "", false, true)
}

// Login authenticates credentials and issues a token pair
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setAuthCookies(ctx, result.AccessToken, result.RefreshToken)
	ctx.JSON(http.StatusOK, result)
}

// Refresh rotates the refresh token. The token is read from the request
// body, falling back to the refreshToken cookie.
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshRequest
	_ = ctx.ShouldBindJSON(&req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		if cookie, err := ctx.Cookie("refreshToken"); err == nil {
			refreshToken = cookie
		}
	}

	result, err := c.authService.Refresh(ctx, refreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setAuthCookies(ctx, result.AccessToken, result.RefreshToken)
	ctx.JSON(http.StatusOK, result)
}

// Logout deletes the refresh token and clears the auth cookies
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshRequest
	_ = ctx.ShouldBindJSON(&req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		if cookie, err := ctx.Cookie("refreshToken"); err == nil {
			refreshToken = cookie
		}
	}

	if err := c.authService.Logout(ctx, refreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearAuthCookies(ctx)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Logged out successfully", nil))
}
