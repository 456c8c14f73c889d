package service

import (
	"fmt"
	"lms/models"

	"gorm.io/gorm"
)

// EnrollCourses enrolls a user into each of the given courses. For every
// course the enrollment row and its empty progress record are created in one
// transaction, so either both exist afterwards or neither does. Courses the
// user already holds are skipped, which makes a retried payment callback a
// no-op instead of a double enrollment.
//
// Returns the courses that were newly enrolled so the caller can send
// confirmation emails.
func EnrollCourses(db *gorm.DB, courseIDs []uint, userID uint) ([]models.Course, error) {
	if len(courseIDs) == 0 {
		return nil, fmt.Errorf("no course IDs provided")
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	var enrolled []models.Course
	for _, courseID := range courseIDs {
		var course models.Course
		if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			return enrolled, fmt.Errorf("course %d not found", courseID)
		}

		tx := db.Begin()

		// Already enrolled: skip, at-most-once. Checked inside the
		// transaction so two concurrent callbacks cannot both pass it.
		var existing models.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
			tx.Rollback()
			continue
		}

		enrollment := models.Enrollment{
			UserID:   userID,
			CourseID: courseID,
			Status:   models.EnrollmentStatusEnrolled,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			tx.Rollback()
			return enrolled, fmt.Errorf("failed to enroll in course %d: %w", courseID, err)
		}

		progress := models.CourseProgress{
			UserID:       userID,
			CourseID:     courseID,
			EnrollmentID: enrollment.ID,
		}
		if err := tx.Create(&progress).Error; err != nil {
			tx.Rollback()
			return enrolled, fmt.Errorf("failed to create progress record for course %d: %w", courseID, err)
		}

		if err := tx.Commit().Error; err != nil {
			return enrolled, fmt.Errorf("failed to commit enrollment for course %d: %w", courseID, err)
		}

		enrolled = append(enrolled, course)
	}

	return enrolled, nil
}

// IsEnrolled reports whether the user holds a live enrollment in the course
func IsEnrolled(db *gorm.DB, courseID, userID uint) bool {
	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	return err == nil
}
