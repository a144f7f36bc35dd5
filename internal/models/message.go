package models

import "time"

// Message is a contact-form message. Read is a tri-state flag: nil means
// the message has never been marked, and counts as unread alongside false.
type Message struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Message   string    `json:"message" validate:"required"`
	Read      *bool     `json:"read"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
