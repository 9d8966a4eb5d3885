package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is the identity behind a booking. Each submission creates a fresh
// row; clients are never updated or deleted by the application.
type Client struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FullName       string `gorm:"size:100;not null" json:"full_name"`
	WhatsAppNumber string `gorm:"size:30;not null" json:"whatsapp_number"`
	Email          string `gorm:"size:100;not null" json:"email"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
