package repositories

import (
	"porto/internal/models"
)

// MessageRepository defines the interface for contact-message data access.
type MessageRepository interface {
	GetAll() ([]models.Message, error)
	Create(message *models.Message) error
	SetRead(id int64, read bool) (*models.Message, error)
	Delete(id int64) error
	// Reset removes every message and makes a best-effort attempt to reset
	// the id sequence; failure to resequence is not an error.
	Reset() error
	CountUnread() (int64, error)
}
