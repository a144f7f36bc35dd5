package repositories

import (
	"fmt"

	"porto/internal/models"

	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// List retrieves a page of comments, newest first, with the exact total.
func (r *GORMCommentRepository) List(limit, offset int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.Model(&models.Comment{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	comments := []models.Comment{}
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// Create inserts a new comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Delete removes a comment by id. A missing row is not an error.
func (r *GORMCommentRepository) Delete(id int64) error {
	if err := r.db.Delete(&models.Comment{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return nil
}

// Reset empties the comments table via the shared best-effort truncate chain.
func (r *GORMCommentRepository) Reset() error {
	return resetTable(r.db, "comments")
}

// MaxID returns the highest comment id, or 0 when the table is empty.
func (r *GORMCommentRepository) MaxID() (int64, error) {
	var maxID int64
	err := r.db.Model(&models.Comment{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max comment id: %w", err)
	}
	return maxID, nil
}

// ListAfter retrieves all comments with an id greater than the cursor,
// ascending.
func (r *GORMCommentRepository) ListAfter(id int64) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.
		Where("id > ?", id).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments after %d: %w", id, err)
	}
	return comments, nil
}

// Count returns the exact number of comments.
func (r *GORMCommentRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Comment{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return total, nil
}
