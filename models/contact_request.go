package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRequest is a message sent through the contact form.
// Name, email and message are stored encrypted.
type ContactRequest struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	UserID           *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	NameEncrypted    string  `gorm:"type:text;not null" json:"-"`
	EmailEncrypted   string  `gorm:"type:text;not null" json:"-"`
	MessageEncrypted string  `gorm:"type:text;not null" json:"-"`

	EmailSent bool   `gorm:"not null;default:false" json:"email_sent"`
	IPAddress string `gorm:"type:varchar(45)" json:"ip_address"`
}

// BeforeCreate hook to generate UUID
func (r *ContactRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (ContactRequest) TableName() string {
	return "contact_requests"
}
