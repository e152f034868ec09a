package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/services"
	"github.com/dparedes/leagueadmin/internal/middleware"
)

// EmailController handles bulk notification dispatch
type EmailController struct {
	notificationService services.NotificationService
}

// NewEmailController creates a new EmailController
func NewEmailController(notificationService services.NotificationService) *EmailController {
	return &EmailController{notificationService: notificationService}
}

// SendEmail dispatches a notification to registered student addresses
func (c *EmailController) SendEmail(ctx *gin.Context) {
	var req dto.SendEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.notificationService.SendBulk(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
