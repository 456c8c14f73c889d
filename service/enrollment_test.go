package service

import (
	"fmt"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Section{},
		&models.SubSection{},
		&models.Enrollment{},
		&models.CourseProgress{},
		&models.CompletedUnit{},
		&models.Payment{},
	))

	return db
}

func seedStudentAndCourse(t *testing.T, db *gorm.DB) (models.User, models.Course) {
	t.Helper()

	user := models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent, Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	instructor := models.User{Name: "Ivan", Email: "ivan@example.com", Role: models.RoleInstructor, Password: "x"}
	require.NoError(t, db.Create(&instructor).Error)

	course := models.Course{Title: "Go Basics", Description: "Intro course", Price: 500, Status: models.CourseStatusPublished, InstructorID: instructor.ID}
	require.NoError(t, db.Create(&course).Error)

	return user, course
}

func TestEnrollCoursesCreatesEnrollmentAndProgress(t *testing.T) {
	db := newTestDB(t)
	user, course := seedStudentAndCourse(t, db)

	enrolled, err := EnrollCourses(db, []uint{course.ID}, user.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, course.ID, enrolled[0].ID)

	var enrollments []models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).Find(&enrollments).Error)
	require.Len(t, enrollments, 1)
	assert.Equal(t, models.EnrollmentStatusEnrolled, enrollments[0].Status)

	// Exactly one progress record, tied to the enrollment
	var progress []models.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).Find(&progress).Error)
	require.Len(t, progress, 1)
	assert.Equal(t, enrollments[0].ID, progress[0].EnrollmentID)
}

func TestEnrollCoursesIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user, course := seedStudentAndCourse(t, db)

	_, err := EnrollCourses(db, []uint{course.ID}, user.ID)
	require.NoError(t, err)

	// Second run must not create a second enrollment or progress record
	enrolled, err := EnrollCourses(db, []uint{course.ID}, user.ID)
	require.NoError(t, err)
	assert.Empty(t, enrolled)

	var enrollCount, progressCount int64
	db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).Count(&enrollCount)
	db.Model(&models.CourseProgress{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).Count(&progressCount)
	assert.Equal(t, int64(1), enrollCount)
	assert.Equal(t, int64(1), progressCount)
}

func TestEnrollCoursesFailsOnUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	user, course := seedStudentAndCourse(t, db)

	// First course enrolls, second does not exist
	_, err := EnrollCourses(db, []uint{course.ID, 9999}, user.ID)
	require.Error(t, err)

	// The first enrollment is still intact; no progress record exists
	// without its enrollment
	var enrollCount, progressCount int64
	db.Model(&models.Enrollment{}).Where("user_id = ? AND is_deleted = ?", user.ID, false).Count(&enrollCount)
	db.Model(&models.CourseProgress{}).Where("user_id = ? AND is_deleted = ?", user.ID, false).Count(&progressCount)
	assert.Equal(t, enrollCount, progressCount)
}

func TestEnrollCoursesFailsOnUnknownUser(t *testing.T) {
	db := newTestDB(t)
	_, course := seedStudentAndCourse(t, db)

	_, err := EnrollCourses(db, []uint{course.ID}, 4242)
	require.Error(t, err)
}

func TestIsEnrolled(t *testing.T) {
	db := newTestDB(t)
	user, course := seedStudentAndCourse(t, db)

	assert.False(t, IsEnrolled(db, course.ID, user.ID))

	_, err := EnrollCourses(db, []uint{course.ID}, user.ID)
	require.NoError(t, err)

	assert.True(t, IsEnrolled(db, course.ID, user.ID))
}
