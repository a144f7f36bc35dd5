package repositories

import (
	"porto/internal/models"
)

// ImageRepository defines the interface for image data access. List returns
// metadata only; the data URI payload is fetched per image.
type ImageRepository interface {
	List(limit, offset int) ([]models.ImageMeta, int64, error)
	GetByID(id string) (*models.Image, error)
	Create(image *models.Image) error
	UpdateMeta(id string, fields map[string]interface{}) (*models.Image, error)
	Delete(id string) error
	Count() (int64, error)
}
