package repositories

import (
	"fmt"
	"log"

	"porto/internal/models"

	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{db: db}
}

// GetAll retrieves all messages, newest first.
func (r *GORMMessageRepository) GetAll() ([]models.Message, error) {
	messages := []models.Message{}
	if err := r.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Create inserts a new message.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// SetRead updates the read flag of a message and returns the updated row.
func (r *GORMMessageRepository) SetRead(id int64, read bool) (*models.Message, error) {
	res := r.db.Model(&models.Message{}).Where("id = ?", id).Update("read", read)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update message %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("message %d: %w", id, ErrNotFound)
	}

	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload message %d: %w", id, err)
	}
	return &message, nil
}

// Delete removes a message by id. A missing row is not an error.
func (r *GORMMessageRepository) Delete(id int64) error {
	if err := r.db.Delete(&models.Message{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	return nil
}

// Reset empties the messages table. It tries the truncate procedure first;
// when that is unavailable it deletes all rows and makes a best-effort
// attempt to reset the id sequence.
func (r *GORMMessageRepository) Reset() error {
	return resetTable(r.db, "messages")
}

// CountUnread counts messages that were never marked read.
func (r *GORMMessageRepository) CountUnread() (int64, error) {
	var total int64
	err := r.db.Model(&models.Message{}).
		Where("read IS NULL OR read = ?", false).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return total, nil
}

// resetTable is the shared best-effort truncate chain: a dedicated
// truncate_<table> procedure when the backend has one, otherwise a plain
// delete-all followed by a non-fatal reset_<table>_identity attempt.
func resetTable(db *gorm.DB, table string) error {
	if err := db.Exec("SELECT truncate_" + table + "()").Error; err == nil {
		return nil
	}

	if err := db.Exec("DELETE FROM " + table).Error; err != nil {
		return fmt.Errorf("failed to delete all rows from %s: %w", table, err)
	}
	if err := db.Exec("SELECT reset_" + table + "_identity()").Error; err != nil {
		log.Printf("Could not reset %s id sequence: %v", table, err)
	}
	return nil
}
