package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/services"
	"github.com/dparedes/leagueadmin/internal/middleware"
)

// StudentController handles student CRUD, media uploads, bulk import and
// roster exports
type StudentController struct {
	studentService services.StudentService
	importService  services.ImportService
	exportService  services.ExportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, importService services.ImportService, exportService services.ExportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		importService:  importService,
		exportService:  exportService,
	}
}

// CreateStudent handles student creation
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Student created successfully", student))
}

// GetStudentByID retrieves one student
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: student, Timestamp: time.Now()})
}

// GetAllStudents lists students, optionally filtered by status, category or
// enablement
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, err)
		return
	}

	students, err := c.studentService.GetAllStudents(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: students, Timestamp: time.Now()})
}

// UpdateStudent applies edits to a student
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Student updated successfully", student))
}

// DeleteStudent deletes a student together with their shares and media
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.studentService.DeleteStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   result.Message,
		Errors:    result.Errors,
		Timestamp: time.Now(),
	})
}

// UploadProfileImage replaces the student's profile image
func (c *StudentController) UploadProfileImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		bindError(ctx, err)
		return
	}

	student, err := c.studentService.UploadProfileImage(ctx, id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Profile image updated", student))
}

// UploadArchivedFile attaches a document to the student
func (c *StudentController) UploadArchivedFile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		bindError(ctx, err)
		return
	}

	student, err := c.studentService.UploadArchivedFile(ctx, id, file, ctx.PostForm("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Archived file stored", student))
}

// DeleteArchivedFile removes one archived document by its index
func (c *StudentController) DeleteArchivedFile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		bindError(ctx, fmt.Errorf("index must be a non-negative number"))
		return
	}

	student, err := c.studentService.DeleteArchivedFile(ctx, id, index)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Archived file removed", student))
}

// ImportStudents ingests an xlsx roster in bulk
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		bindError(ctx, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		bindError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.importService.ImportStudents(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// ExportStudentsExcel streams the filtered roster as an xlsx download
func (c *StudentController) ExportStudentsExcel(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, err)
		return
	}

	filename := fmt.Sprintf("alumnos_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)

	if err := c.exportService.StudentsExcel(ctx, &filter, ctx.Writer); err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}

// ExportStudentsPDF streams the filtered roster as a PDF download
func (c *StudentController) ExportStudentsPDF(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, err)
		return
	}

	filename := fmt.Sprintf("alumnos_%s.pdf", time.Now().Format("20060102_150405"))
	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)

	if err := c.exportService.StudentsPDF(ctx, &filter, ctx.Writer); err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}
