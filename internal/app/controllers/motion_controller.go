package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/services"
	"github.com/dparedes/leagueadmin/internal/middleware"
)

// MotionController handles cash ledger operations
type MotionController struct {
	motionService services.MotionService
	exportService services.ExportService
}

// NewMotionController creates a new MotionController
func NewMotionController(motionService services.MotionService, exportService services.ExportService) *MotionController {
	return &MotionController{
		motionService: motionService,
		exportService: exportService,
	}
}

// CreateMotion creates a ledger entry
func (c *MotionController) CreateMotion(ctx *gin.Context) {
	var req dto.CreateMotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	motion, err := c.motionService.CreateMotion(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Motion created successfully", motion))
}

// GetMotionByID retrieves one ledger entry
func (c *MotionController) GetMotionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	motion, err := c.motionService.GetMotionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: motion, Timestamp: time.Now()})
}

// GetMotions lists ledger entries with combined query filters
func (c *MotionController) GetMotions(ctx *gin.Context) {
	var filter dto.MotionFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, err)
		return
	}

	c.listMotions(ctx, &filter)
}

// GetMotionsByDate lists the entries of a single day given as a path
// parameter
func (c *MotionController) GetMotionsByDate(ctx *gin.Context) {
	c.listMotions(ctx, &dto.MotionFilter{Date: ctx.Param("date")})
}

// GetMotionsByLocation lists the entries of one sede
func (c *MotionController) GetMotionsByLocation(ctx *gin.Context) {
	c.listMotions(ctx, &dto.MotionFilter{Location: ctx.Param("location")})
}

// GetMotionsByRange lists entries within an inclusive from/to window
func (c *MotionController) GetMotionsByRange(ctx *gin.Context) {
	from := ctx.Query("from")
	to := ctx.Query("to")
	if from == "" || to == "" {
		bindError(ctx, fmt.Errorf("both from and to query parameters are required"))
		return
	}
	c.listMotions(ctx, &dto.MotionFilter{From: from, To: to})
}

func (c *MotionController) listMotions(ctx *gin.Context, filter *dto.MotionFilter) {
	motions, err := c.motionService.GetMotions(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: motions, Timestamp: time.Now()})
}

// UpdateMotion edits a ledger entry
func (c *MotionController) UpdateMotion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	motion, err := c.motionService.UpdateMotion(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Motion updated successfully", motion))
}

// DeleteMotion deletes a ledger entry
func (c *MotionController) DeleteMotion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.motionService.DeleteMotion(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Motion deleted successfully", nil))
}

// ExportMotionsExcel streams the filtered ledger as an xlsx download
func (c *MotionController) ExportMotionsExcel(ctx *gin.Context) {
	var filter dto.MotionFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, err)
		return
	}

	filename := fmt.Sprintf("movimientos_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)

	if err := c.exportService.MotionsExcel(ctx, &filter, ctx.Writer); err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}
