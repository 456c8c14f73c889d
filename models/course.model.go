package models

import "gorm.io/gorm"

// CourseStatus defines the publish state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "DRAFT"
	CourseStatusPublished CourseStatus = "PUBLISHED"
)

type Course struct {
	gorm.Model
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	WhatYouWillLearn string       `json:"whatYouWillLearn"`
	Thumbnail        string       `json:"thumbnail"`
	Price            uint         `json:"price"` // major INR units
	Status           CourseStatus `gorm:"type:varchar(20);default:'DRAFT'" json:"status"`
	InstructorID     uint         `gorm:"index;not null" json:"instructorId"`
	IsDeleted        bool         `gorm:"default:false"`

	Instructor User `gorm:"foreignKey:InstructorID" json:"-"`
}
