package services

import (
	"porto/internal/models"
	"porto/internal/repositories"
	"porto/internal/utils"
)

// BlogService handles business logic related to blog posts, in particular
// slug derivation and the published-only visibility gate.
type BlogService struct {
	repo repositories.BlogRepository
}

// NewBlogService creates a new BlogService.
func NewBlogService(repo repositories.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

// List retrieves a page of post summaries. Callers set PublishedOnly for
// anonymous and non-admin requests.
func (s *BlogService) List(params repositories.BlogListParams) ([]models.BlogPostSummary, int64, error) {
	return s.repo.List(params)
}

// ListFull retrieves a page of complete post rows for the admin listing.
func (s *BlogService) ListFull(params repositories.BlogListParams) ([]models.BlogPost, int64, error) {
	return s.repo.ListFull(params)
}

// GetBySlug retrieves a single post, restricted to published posts unless
// the caller is an admin.
func (s *BlogService) GetBySlug(slug string, publishedOnly bool) (*models.BlogPost, error) {
	return s.repo.GetBySlug(slug, publishedOnly)
}

// Create creates a new post, deriving the slug from the title when none is
// supplied.
func (s *BlogService) Create(post *models.BlogPost) error {
	if post.Slug == "" && post.Title != "" {
		post.Slug = utils.Slugify(post.Title)
	}
	return s.repo.Create(post)
}

// Update applies a partial update. The slug is re-derived only when the
// payload carries a new title and does not set the slug explicitly.
func (s *BlogService) Update(id string, data map[string]interface{}) (*models.BlogPost, error) {
	fields := pickFields(data, "title", "slug", "excerpt", "content", "featured_image", "tags", "published")
	if tags, ok := fields["tags"]; ok {
		fields["tags"] = toStringList(tags)
	}

	if _, slugGiven := data["slug"]; !slugGiven {
		if title, ok := fields["title"].(string); ok && title != "" {
			fields["slug"] = utils.Slugify(title)
		}
	}

	if len(fields) == 0 {
		return nil, ErrNoUpdatableFields
	}
	return s.repo.Update(id, fields)
}

// Delete deletes a post by id.
func (s *BlogService) Delete(id string) error {
	return s.repo.Delete(id)
}
