package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/services"
	"github.com/dparedes/leagueadmin/internal/middleware"
)

// ShareController handles fee installment operations
type ShareController struct {
	shareService services.ShareService
}

// NewShareController creates a new ShareController
func NewShareController(shareService services.ShareService) *ShareController {
	return &ShareController{shareService: shareService}
}

// CreateShare creates one pending share for a student
func (c *ShareController) CreateShare(ctx *gin.Context) {
	var req dto.CreateShareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	share, err := c.shareService.CreateShare(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Share created successfully", share))
}

// GetShareByID retrieves one share
func (c *ShareController) GetShareByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	share, err := c.shareService.GetShareByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: share, Timestamp: time.Now()})
}

// GetSharesByStudent lists all shares of one student
func (c *ShareController) GetSharesByStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	shares, err := c.shareService.GetSharesByStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: shares, Timestamp: time.Now()})
}

// GetAllShares lists shares, optionally filtered by status
func (c *ShareController) GetAllShares(ctx *gin.Context) {
	shares, err := c.shareService.GetAllShares(ctx, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: shares, Timestamp: time.Now()})
}

// UpdateShare edits a share, including payment registration
func (c *ShareController) UpdateShare(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateShareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	share, err := c.shareService.UpdateShare(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Share updated successfully", share))
}

// DeleteShare deletes a share
func (c *ShareController) DeleteShare(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.shareService.DeleteShare(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Share deleted successfully", nil))
}

// CreateMassiveShares creates one pending share per active student for a
// period
func (c *ShareController) CreateMassiveShares(ctx *gin.Context) {
	var req dto.CreateMassiveSharesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	result, err := c.shareService.CreateMassiveShares(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}
