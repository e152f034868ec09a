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

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
)

type stubNotificationService struct {
	result *dto.SendEmailResponse
	err    error
}

func (s *stubNotificationService) SendBulk(_ context.Context, _ *dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	return s.result, s.err
}

func emailRouter(svc *stubNotificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/email/send", NewEmailController(svc).SendEmail)
	return router
}

func postEmail(t *testing.T, router *gin.Engine, req dto.SendEmailRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/email/send", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, httpReq)
	return rec
}

func TestSendEmailSuccess(t *testing.T) {
	router := emailRouter(&stubNotificationService{
		result: &dto.SendEmailResponse{
			Message:       "Sent 1 of 1 messages",
			SuccessEmails: []string{"ana@example.com"},
		},
	})

	rec := postEmail(t, router, dto.SendEmailRequest{
		Recipients: []string{"ana@example.com"},
		Subject:    "Aviso",
		Message:    "Hola",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")
}

func TestSendEmailTooManyRecipientsReturns400(t *testing.T) {
	router := emailRouter(&stubNotificationService{err: apperrors.ErrTooManyRecipients})

	rec := postEmail(t, router, dto.SendEmailRequest{
		Recipients: []string{"ana@example.com"},
		Subject:    "Aviso",
		Message:    "Hola",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendEmailNoValidRecipientsReturns400(t *testing.T) {
	router := emailRouter(&stubNotificationService{err: apperrors.ErrNoValidRecipients})

	rec := postEmail(t, router, dto.SendEmailRequest{
		Recipients: []string{"nobody@example.com"},
		Subject:    "Aviso",
		Message:    "Hola",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendEmailMissingSubjectFailsBinding(t *testing.T) {
	router := emailRouter(&stubNotificationService{})

	rec := postEmail(t, router, dto.SendEmailRequest{
		Recipients: []string{"ana@example.com"},
		Message:    "Hola",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
