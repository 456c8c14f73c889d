package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// ownCourse loads the course and checks the caller owns it (or is admin)
func ownCourse(c *fiber.Ctx, courseID uint) (*models.Course, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	role, _ := c.Locals("role").(models.Role)
	if role != models.RoleAdmin && course.InstructorID != userID {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
	}

	return &course, nil
}

// CreateSection adds a section to a course
func CreateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, errResp := ownCourse(c, courseID)
	if course == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedSection").(*struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section := models.Section{
		CourseID: course.ID,
		Name:     reqData.Name,
		Position: reqData.Position,
	}

	if err := database.Database.Db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section created successfully!", section)
}

// DeleteSection removes a section and its sub-sections
func DeleteSection(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(uint)
	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	course, errResp := ownCourse(c, section.CourseID)
	if course == nil {
		return errResp
	}

	tx := db.Begin()
	if err := tx.Model(&models.SubSection{}).Where("section_id = ?", sectionID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete sub-sections!", nil)
	}
	if err := tx.Model(&section).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

// CreateSubSection adds a video unit to a section
func CreateSubSection(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(uint)
	db := database.Database.Db

	var section models.Section
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	course, errResp := ownCourse(c, section.CourseID)
	if course == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedSubSection").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Duration    int64  `json:"duration"`
		VideoURL    string `json:"videoUrl"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	subSection := models.SubSection{
		SectionID:   section.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Duration:    reqData.Duration,
		VideoURL:    reqData.VideoURL,
	}

	if err := db.Create(&subSection).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create sub-section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-section created successfully!", subSection)
}

// DeleteSubSection removes a single video unit
func DeleteSubSection(c *fiber.Ctx) error {
	subSectionID := c.Locals("subSectionID").(uint)
	db := database.Database.Db

	var subSection models.SubSection
	if err := db.Where("id = ? AND is_deleted = ?", subSectionID, false).First(&subSection).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sub-section not found!", nil)
	}

	var section models.Section
	if err := db.Where("id = ?", subSection.SectionID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	course, errResp := ownCourse(c, section.CourseID)
	if course == nil {
		return errResp
	}

	if err := db.Model(&subSection).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete sub-section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-section deleted successfully!", nil)
}
