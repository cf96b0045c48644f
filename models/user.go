package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a person who signed in through the identity provider.
// Profile fields are refreshed from the provider on every login.
type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Subject     string     `gorm:"uniqueIndex;not null" json:"user_id"` // provider "sub" claim
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"index" json:"email,omitempty"`
	Picture     string     `json:"picture,omitempty"`
	Language    string     `gorm:"type:varchar(5)" json:"language,omitempty"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// DisplayName returns the name, falling back to the email or subject
func (u *User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.Subject
	}
}
