package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course browsing and instructor management routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Course management (instructor only)
	courseGroup.Post("/create", middleware.JWTMiddleware, middleware.IsInstructor, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.IsInstructor, validators.CourseID(), controllers.PublishCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.IsInstructor, validators.CourseID(), controllers.DeleteCourse)

	// Section management
	courseGroup.Post("/:id/section", middleware.JWTMiddleware, middleware.IsInstructor, validators.CourseID(), validators.CreateSection(), controllers.CreateSection)

	sectionGroup := app.Group("/section")
	sectionGroup.Delete("/:section_id", middleware.JWTMiddleware, middleware.IsInstructor, validators.SectionID(), controllers.DeleteSection)
	sectionGroup.Post("/:section_id/subsection", middleware.JWTMiddleware, middleware.IsInstructor, validators.SectionID(), validators.CreateSubSection(), controllers.CreateSubSection)

	subSectionGroup := app.Group("/subsection")
	subSectionGroup.Delete("/:sub_section_id", middleware.JWTMiddleware, middleware.IsInstructor, validators.SubSectionID(), controllers.DeleteSubSection)

	// Admin
	adminGroup := app.Group("/admin")
	adminGroup.Get("/dashboard/stats", middleware.JWTMiddleware, middleware.IsAdmin, controllers.AdminDashboardStats)
	adminGroup.Delete("/course/:id", middleware.JWTMiddleware, middleware.IsAdmin, validators.CourseID(), controllers.DeleteCourse)
}
