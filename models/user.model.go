package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the account type of a user. Role checks are done against these
// constants only; free-form role strings are rejected at signup.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole maps a request string to a known role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	gorm.Model
	ProfileImage    string    `gorm:"default:''"`
	Name            string    `gorm:"default:''"`
	Email           string    `gorm:"unique;not null"`
	Mobile          string    `gorm:"default:''"`
	Role            Role      `gorm:"type:varchar(20);default:'STUDENT'"`
	Password        string    `gorm:"not null" json:"-"`
	IsEmailVerified bool      `gorm:"default:false"`
	LastLogin       time.Time `gorm:"default:NULL"`
	IsDeleted       bool      `gorm:"default:false"`
}
