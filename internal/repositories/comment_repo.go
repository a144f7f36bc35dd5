package repositories

import (
	"porto/internal/models"
)

// CommentRepository defines the interface for comment data access. MaxID and
// ListAfter serve the ascending-id cursor of the comment stream.
type CommentRepository interface {
	List(limit, offset int) ([]models.Comment, int64, error)
	Create(comment *models.Comment) error
	Delete(id int64) error
	// Reset removes every comment and makes a best-effort attempt to reset
	// the id sequence; failure to resequence is not an error.
	Reset() error
	MaxID() (int64, error)
	ListAfter(id int64) ([]models.Comment, error)
	Count() (int64, error)
}
