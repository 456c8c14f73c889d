package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new draft course owned by the calling instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title            string `json:"title"`
		Description      string `json:"description"`
		WhatYouWillLearn string `json:"whatYouWillLearn"`
		Thumbnail        string `json:"thumbnail"`
		Price            uint   `json:"price"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:            reqData.Title,
		Description:      reqData.Description,
		WhatYouWillLearn: reqData.WhatYouWillLearn,
		Thumbnail:        reqData.Thumbnail,
		Price:            reqData.Price,
		Status:           models.CourseStatusDraft,
		InstructorID:     userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

// PublishCourse moves a draft course to PUBLISHED
func PublishCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only publish your own courses!", nil)
	}

	if err := db.Model(&course).Update("status", models.CourseStatusPublished).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page" query:"page"`
		Limit *int `json:"limit" query:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ? AND status = ?", false, models.CourseStatusPublished)

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns a course with its sections, sub-sections and total
// duration. The content tree is assembled with explicit queries per level.
func GetCourseDetails(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Could not find the course!", nil)
	}

	var instructor models.User
	db.Select("id, name, email").Where("id = ?", course.InstructorID).First(&instructor)

	var sections []models.Section
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("position asc").Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	type SectionWithContent struct {
		models.Section
		SubSections []models.SubSection `json:"subSections"`
	}

	var totalDurationSeconds int64
	content := make([]SectionWithContent, len(sections))
	for i, section := range sections {
		var subSections []models.SubSection
		db.Where("section_id = ? AND is_deleted = ?", section.ID, false).Find(&subSections)
		for _, sub := range subSections {
			totalDurationSeconds += sub.Duration
		}
		content[i] = SectionWithContent{Section: section, SubSections: subSections}
	}

	var enrolledCount int64
	db.Model(&models.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&enrolledCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":        course,
		"instructor":    fiber.Map{"id": instructor.ID, "name": instructor.Name},
		"courseContent": content,
		"totalDuration": totalDurationSeconds,
		"enrolledCount": enrolledCount,
	})
}

// DeleteCourse removes a course and everything hanging off it: sub-sections,
// sections, enrollments and progress records. Runs as one transaction so a
// half-deleted course never survives.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Instructors can only delete their own courses; admins can delete any
	if user.Role != models.RoleAdmin && course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own courses!", nil)
	}

	tx := db.Begin()

	// Sub-sections of every section first
	var sections []models.Section
	if err := tx.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&sections).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	for _, section := range sections {
		if err := tx.Model(&models.SubSection{}).Where("section_id = ?", section.ID).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course content!", nil)
		}
	}
	if err := tx.Model(&models.Section{}).Where("course_id = ?", courseID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course sections!", nil)
	}

	// Unenroll every student: enrollments and their progress records
	if err := tx.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll students!", nil)
	}
	if err := tx.Model(&models.CourseProgress{}).Where("course_id = ?", courseID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove progress records!", nil)
	}

	// Finally the course itself
	if err := tx.Model(&course).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
