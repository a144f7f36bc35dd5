package repositories

import (
	"errors"
	"fmt"
	"time"

	"porto/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBlogRepository is a GORM implementation of BlogRepository.
type GORMBlogRepository struct {
	db *gorm.DB
}

// NewGORMBlogRepository creates a new instance of GORMBlogRepository.
func NewGORMBlogRepository(db *gorm.DB) *GORMBlogRepository {
	return &GORMBlogRepository{db: db}
}

func (r *GORMBlogRepository) filtered(params BlogListParams) *gorm.DB {
	tx := r.db.Model(&models.BlogPost{})
	if params.PublishedOnly {
		tx = tx.Where("published = ?", true)
	}
	tx = applySearch(tx, params.Query, "title", "excerpt", "content")
	return applyContainsAll(tx, "tags", params.Tags)
}

// List retrieves a page of post summaries plus the exact count of rows
// matching the same filters.
func (r *GORMBlogRepository) List(params BlogListParams) ([]models.BlogPostSummary, int64, error) {
	var total int64
	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	posts := []models.BlogPostSummary{}
	err := r.filtered(params).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, total, nil
}

// ListFull retrieves a page of complete post rows under the same contract
// as List.
func (r *GORMBlogRepository) ListFull(params BlogListParams) ([]models.BlogPost, int64, error) {
	var total int64
	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	posts := []models.BlogPost{}
	err := r.filtered(params).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, total, nil
}

// GetBySlug retrieves a single post by slug, restricted to published posts
// unless the caller is an admin.
func (r *GORMBlogRepository) GetBySlug(slug string, publishedOnly bool) (*models.BlogPost, error) {
	tx := r.db.Where("slug = ?", slug)
	if publishedOnly {
		tx = tx.Where("published = ?", true)
	}

	var post models.BlogPost
	if err := tx.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blog post %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get blog post %s: %w", slug, err)
	}
	return &post, nil
}

// Create inserts a new post, assigning an id when none is given.
func (r *GORMBlogRepository) Create(post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

// Update applies a partial update by id and returns the updated row.
func (r *GORMBlogRepository) Update(id string, fields map[string]interface{}) (*models.BlogPost, error) {
	fields["updated_at"] = time.Now()
	res := r.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update blog post %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("blog post %s: %w", id, ErrNotFound)
	}

	var post models.BlogPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload blog post %s: %w", id, err)
	}
	return &post, nil
}

// Delete removes a post by id. A missing row is not an error.
func (r *GORMBlogRepository) Delete(id string) error {
	if err := r.db.Delete(&models.BlogPost{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete blog post %s: %w", id, err)
	}
	return nil
}

// Count returns the exact number of blog posts, published or not.
func (r *GORMBlogRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.BlogPost{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}
	return total, nil
}
