package repositories

import (
	"porto/internal/models"
)

// BlogListParams are the filters for a blog-post listing. PublishedOnly is
// the visibility gate for anonymous and non-admin callers and must be
// applied identically wherever the collection is read.
type BlogListParams struct {
	Query         string   // substring search over title, excerpt and content
	Tags          []string // contains-all filter over the tag list
	PublishedOnly bool
	Limit         int
	Offset        int
}

// BlogRepository defines the interface for blog-post data access. List
// returns summaries without content; ListFull returns complete rows for the
// admin listing.
type BlogRepository interface {
	List(params BlogListParams) ([]models.BlogPostSummary, int64, error)
	ListFull(params BlogListParams) ([]models.BlogPost, int64, error)
	GetBySlug(slug string, publishedOnly bool) (*models.BlogPost, error)
	Create(post *models.BlogPost) error
	Update(id string, fields map[string]interface{}) (*models.BlogPost, error)
	Delete(id string) error
	Count() (int64, error)
}
