// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account on the SkillSwap platform.
// The password hash is never serialized; every service returns users with
// the hash already stripped.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FullName   string         `gorm:"not null" json:"full_name"`
	Username   string         `gorm:"uniqueIndex;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Mobile     string         `json:"mobile"`
	Password   string         `gorm:"not null" json:"-"`
	Bio        string         `gorm:"type:text" json:"bio"`
	ProfilePic string         `json:"profile_pic"`
	CoverPic   string         `json:"cover_pic"`
	Skills     []string       `gorm:"serializer:json" json:"skills"`
	Swaps      int            `gorm:"not null;default:0" json:"swaps"`
	Points     int            `gorm:"not null;default:0" json:"points"`
	Rating     int            `gorm:"not null;default:0" json:"rating"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Posts      []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Sanitized returns a copy of the user with the password hash cleared.
// The json tag already hides the hash; clearing it as well keeps the hash
// out of logs and of any future non-JSON encoding.
func (u User) Sanitized() *User {
	u.Password = ""
	return &u
}
