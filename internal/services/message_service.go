package services

import (
	"log"

	"porto/internal/models"
	"porto/internal/repositories"
)

// Publisher is the slice of the notification client services need. A nil
// Publisher disables events.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
}

// MessageService handles business logic related to contact messages.
type MessageService struct {
	repo      repositories.MessageRepository
	publisher Publisher
}

// NewMessageService creates a new MessageService.
func NewMessageService(repo repositories.MessageRepository, publisher Publisher) *MessageService {
	return &MessageService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAll retrieves all messages, newest first.
func (s *MessageService) GetAll() ([]models.Message, error) {
	return s.repo.GetAll()
}

// Create stores a new contact message and publishes a best-effort
// notification event.
func (s *MessageService) Create(message *models.Message) error {
	if err := s.repo.Create(message); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish("message.created", message); err != nil {
			log.Printf("Warning: failed to publish message.created for message %d: %v", message.ID, err)
		}
	}
	return nil
}

// Update applies a partial update. Only the boolean read flag is updatable.
func (s *MessageService) Update(id int64, data map[string]interface{}) (*models.Message, error) {
	read, ok := data["read"].(bool)
	if !ok {
		return nil, ErrNoUpdatableFields
	}
	return s.repo.SetRead(id, read)
}

// Delete deletes a message by id.
func (s *MessageService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// Reset empties the message collection via the best-effort truncate chain.
func (s *MessageService) Reset() error {
	return s.repo.Reset()
}
