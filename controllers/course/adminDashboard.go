package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboardStats returns platform-wide totals plus today's activity
func AdminDashboardStats(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var totalCourses, publishedCourses, totalStudents, totalEnrollments int64
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&models.Course{}).Where("is_deleted = ? AND status = ?", false, models.CourseStatusPublished).Count(&publishedCourses)
	db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, models.RoleStudent).Count(&totalStudents)
	db.Model(&models.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)

	dayStart := now.BeginningOfDay()

	var enrollmentsToday int64
	db.Model(&models.Enrollment{}).Where("is_deleted = ? AND created_at >= ?", false, dayStart).Count(&enrollmentsToday)

	// Revenue today: sum of payments that completed enrollment, in minor units
	var revenueToday int64
	db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("is_deleted = ? AND status = ? AND verified_at >= ?", false, models.PaymentStatusEnrolled, dayStart).
		Scan(&revenueToday)

	var failedEnrollments int64
	db.Model(&models.Payment{}).
		Where("is_deleted = ? AND status IN ?", false, []models.PaymentStatus{models.PaymentStatusEnrollFailed, models.PaymentStatusAbandoned}).
		Count(&failedEnrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"totalCourses":      totalCourses,
		"publishedCourses":  publishedCourses,
		"totalStudents":     totalStudents,
		"totalEnrollments":  totalEnrollments,
		"enrollmentsToday":  enrollmentsToday,
		"revenueToday":      revenueToday,
		"failedEnrollments": failedEnrollments,
	})
}
