package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dparedes/leagueadmin/internal/app/controllers"
	"github.com/dparedes/leagueadmin/internal/middleware"
)

// SetupRouter configures all application routes. Everything except login
// and refresh requires a valid access token; account management, bulk
// import, massive share creation and notification dispatch additionally
// require the admin role.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	shareController *controllers.ShareController,
	motionController *controllers.MotionController,
	userController *controllers.UserController,
	emailController *controllers.EmailController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authenticated.Group("")
	adminOnly.Use(authMiddleware.AdminRequired())

	students := authenticated.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.POST("/:id/profile-image", studentController.UploadProfileImage)
		students.POST("/:id/archived", studentController.UploadArchivedFile)
		students.DELETE("/:id/archived/:index", studentController.DeleteArchivedFile)
		students.GET("/export/excel", studentController.ExportStudentsExcel)
		students.GET("/export/pdf", studentController.ExportStudentsPDF)
	}
	adminOnly.POST("/students/import", studentController.ImportStudents)

	shares := authenticated.Group("/shares")
	{
		shares.GET("", shareController.GetAllShares)
		shares.GET("/:id", shareController.GetShareByID)
		shares.GET("/student/:studentId", shareController.GetSharesByStudent)
		shares.POST("", shareController.CreateShare)
		shares.PUT("/:id", shareController.UpdateShare)
		shares.DELETE("/:id", shareController.DeleteShare)
	}
	adminOnly.POST("/shares/create-massive", shareController.CreateMassiveShares)

	motions := authenticated.Group("/motions")
	{
		motions.GET("", motionController.GetMotions)
		motions.GET("/:id", motionController.GetMotionByID)
		motions.GET("/date/:date", motionController.GetMotionsByDate)
		motions.GET("/range", motionController.GetMotionsByRange)
		motions.GET("/location/:location", motionController.GetMotionsByLocation)
		motions.GET("/export/excel", motionController.ExportMotionsExcel)
		motions.POST("", motionController.CreateMotion)
		motions.PUT("/:id", motionController.UpdateMotion)
		motions.DELETE("/:id", motionController.DeleteMotion)
	}

	users := adminOnly.Group("/users")
	{
		users.GET("", userController.GetAllUsers)
		users.GET("/:id", userController.GetUserByID)
		users.POST("", userController.CreateUser)
		users.PUT("/:id", userController.UpdateUser)
		users.PATCH("/:id/state", userController.UpdateUserState)
		users.DELETE("/:id", userController.DeleteUser)
	}

	adminOnly.POST("/email/send", emailController.SendEmail)
}
