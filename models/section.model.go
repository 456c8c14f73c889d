package models

import "gorm.io/gorm"

// Section is a named chunk of course content, ordered by Position
type Section struct {
	gorm.Model
	CourseID  uint   `gorm:"index;not null" json:"courseId"`
	Name      string `json:"name"`
	Position  int    `gorm:"default:0" json:"position"`
	IsDeleted bool   `gorm:"default:false"`

	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// SubSection is a single video unit inside a section
type SubSection struct {
	gorm.Model
	SectionID   uint   `gorm:"index;not null" json:"sectionId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int64  `json:"duration"` // seconds
	VideoURL    string `json:"videoUrl"`
	IsDeleted   bool   `gorm:"default:false"`

	Section Section `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"-"`
}
