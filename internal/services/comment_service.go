package services

import (
	"log"
	"strings"

	"porto/internal/models"
	"porto/internal/repositories"
)

// CommentService handles business logic related to comments, including the
// cursor reads used by the comment stream.
type CommentService struct {
	repo      repositories.CommentRepository
	publisher Publisher
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo repositories.CommentRepository, publisher Publisher) *CommentService {
	return &CommentService{
		repo:      repo,
		publisher: publisher,
	}
}

// List retrieves a page of comments with the exact total.
func (s *CommentService) List(limit, offset int) ([]models.Comment, int64, error) {
	return s.repo.List(limit, offset)
}

// Create stores a new comment and publishes a best-effort notification
// event. A blank message is rejected.
func (s *CommentService) Create(comment *models.Comment) error {
	if strings.TrimSpace(comment.Message) == "" {
		return ErrMessageRequired
	}

	if err := s.repo.Create(comment); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish("comment.created", comment); err != nil {
			log.Printf("Warning: failed to publish comment.created for comment %d: %v", comment.ID, err)
		}
	}
	return nil
}

// Delete deletes a comment by id.
func (s *CommentService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// Reset empties the comment collection via the best-effort truncate chain.
func (s *CommentService) Reset() error {
	return s.repo.Reset()
}

// Baseline returns the current maximum comment id for a new stream cursor.
func (s *CommentService) Baseline() (int64, error) {
	return s.repo.MaxID()
}

// After returns all comments newer than the cursor, ascending.
func (s *CommentService) After(id int64) ([]models.Comment, error) {
	return s.repo.ListAfter(id)
}
