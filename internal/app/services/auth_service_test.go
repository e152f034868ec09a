package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/auth"
)

type fakeAuthUserStore struct {
	users map[string]*models.User // keyed by mail
}

func (f *fakeAuthUserStore) GetUserByMail(_ context.Context, mail string) (*models.User, error) {
	user, ok := f.users[mail]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type storedToken struct {
	userID int64
	expiry time.Time
}

type fakeTokenStore struct {
	tokens map[string]storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]storedToken{}}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if time.Now().After(stored.expiry) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return stored.userID, stored.expiry, nil
}

func (f *fakeTokenStore) DeleteToken(_ context.Context, token string) error {
	if _, ok := f.tokens[token]; !ok {
		return apperrors.ErrTokenNotFound
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokenStore) DeleteUserTokens(_ context.Context, userID int64) error {
	for token, stored := range f.tokens {
		if stored.userID == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "leagueadmin-test",
	})
}

func authFixture(t *testing.T, state bool) (*fakeAuthUserStore, *fakeTokenStore, AuthService) {
	t.Helper()
	hashed, err := auth.HashPassword("secreto123")
	require.NoError(t, err)

	users := &fakeAuthUserStore{users: map[string]*models.User{
		"admin@example.com": {
			ID: 1, Name: "Admin", Mail: "admin@example.com",
			Password: hashed, Role: models.RoleAdmin, State: state,
		},
	}}
	tokens := newFakeTokenStore()
	return users, tokens, NewAuthService(users, tokens, testJWTService())
}

func TestLoginIssuesTokenPair(t *testing.T) {
	_, tokens, svc := authFixture(t, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Mail: "Admin@Example.com", Password: "secreto123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int((15 * time.Minute).Seconds()), resp.ExpiresIn)
	assert.Contains(t, tokens.tokens, resp.RefreshToken)

	claims, err := testJWTService().ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, svc := authFixture(t, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Mail: "admin@example.com", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownMailSameError(t *testing.T) {
	// Unknown account and wrong password are indistinguishable.
	_, _, svc := authFixture(t, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Mail: "nobody@example.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	_, _, svc := authFixture(t, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Mail: "admin@example.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshRotatesToken(t *testing.T) {
	_, tokens, svc := authFixture(t, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Mail: "admin@example.com", Password: "secreto123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.NotContains(t, tokens.tokens, login.RefreshToken)
	assert.Contains(t, tokens.tokens, refreshed.RefreshToken)

	// The consumed token cannot be replayed.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRefreshExpiredToken(t *testing.T) {
	_, tokens, svc := authFixture(t, true)

	require.NoError(t, tokens.CreateToken(context.Background(), "stale", 1, time.Now().Add(-time.Hour)))

	_, err := svc.Refresh(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshEmptyToken(t *testing.T) {
	_, _, svc := authFixture(t, true)

	_, err := svc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutIdempotent(t *testing.T) {
	_, tokens, svc := authFixture(t, true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Mail: "admin@example.com", Password: "secreto123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	assert.Empty(t, tokens.tokens)

	// Logging out again, or with no token at all, still succeeds.
	assert.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
