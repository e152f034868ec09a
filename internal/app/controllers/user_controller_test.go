package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
)

// stubUserService returns canned values per method.
type stubUserService struct {
	user *models.User
	err  error
}

func (s *stubUserService) CreateUser(_ context.Context, _ *dto.CreateUserRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetUserByID(_ context.Context, _ int64) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetAllUsers(_ context.Context) ([]*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*models.User{s.user}, nil
}

func (s *stubUserService) UpdateUser(_ context.Context, _ int64, _ *dto.UpdateUserRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) UpdateUserState(_ context.Context, _ int64, _ bool) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) DeleteUser(_ context.Context, _ int64) error {
	return s.err
}

func userRouter(svc *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewUserController(svc)
	router.POST("/users", controller.CreateUser)
	router.GET("/users/:id", controller.GetUserByID)
	router.PATCH("/users/:id/state", controller.UpdateUserState)
	router.DELETE("/users/:id", controller.DeleteUser)
	return router
}

func TestDeleteUserFixedReturns403(t *testing.T) {
	router := userRouter(&stubUserService{err: apperrors.ErrUserFixed})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteUserLastAdminReturns403(t *testing.T) {
	router := userRouter(&stubUserService{err: apperrors.ErrLastAdminRemaining})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/3", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserNotFoundReturns404(t *testing.T) {
	router := userRouter(&stubUserService{err: apperrors.ErrUserNotFound})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUserBadIDReturns400(t *testing.T) {
	router := userRouter(&stubUserService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserSuccess(t *testing.T) {
	created := &models.User{ID: 1, Name: "Operador", Mail: "op@example.com", Role: models.RoleUser, State: true}
	router := userRouter(&stubUserService{user: created})

	body, err := json.Marshal(dto.CreateUserRequest{
		Name: "Operador", Mail: "op@example.com", Password: "secreto123",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "op@example.com")
}

func TestCreateUserDuplicateMailReturns409(t *testing.T) {
	router := userRouter(&stubUserService{err: apperrors.ErrMailAlreadyExists})

	body, err := json.Marshal(dto.CreateUserRequest{
		Name: "Operador", Mail: "op@example.com", Password: "secreto123",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateUserStateMissingBodyReturns400(t *testing.T) {
	router := userRouter(&stubUserService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/1/state", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
