package models

import (
	"gorm.io/gorm"
)

// EnrollmentStatus defines the lifecycle of an enrollment
type EnrollmentStatus string

const EnrollmentStatusEnrolled EnrollmentStatus = "ENROLLED"

type Enrollment struct {
	gorm.Model
	UserID    uint             `json:"user_id" gorm:"index;not null"`
	CourseID  uint             `json:"course_id" gorm:"index;not null"`
	Status    EnrollmentStatus `json:"status" gorm:"type:varchar(20);default:'ENROLLED'"`
	IsDeleted bool             `gorm:"default:false"`
	User      User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course    Course           `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CourseProgress tracks which video units a user has completed in a course.
// Exactly one exists per live enrollment; both are created in the same
// transaction.
type CourseProgress struct {
	gorm.Model
	UserID       uint `gorm:"index;not null" json:"user_id"`
	CourseID     uint `gorm:"index;not null" json:"course_id"`
	EnrollmentID uint `gorm:"index;not null" json:"enrollment_id"`
	IsDeleted    bool `gorm:"default:false"`

	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CompletedUnit marks a sub-section as watched within a progress record
type CompletedUnit struct {
	gorm.Model
	CourseProgressID uint `gorm:"index;not null" json:"course_progress_id"`
	SubSectionID     uint `gorm:"index;not null" json:"sub_section_id"`

	CourseProgress CourseProgress `gorm:"foreignKey:CourseProgressID;constraint:OnDelete:CASCADE" json:"-"`
}
