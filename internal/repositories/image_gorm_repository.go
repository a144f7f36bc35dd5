package repositories

import (
	"errors"
	"fmt"

	"porto/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	db *gorm.DB
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{db: db}
}

// List retrieves a page of image metadata, newest first, with the exact
// total.
func (r *GORMImageRepository) List(limit, offset int) ([]models.ImageMeta, int64, error) {
	var total int64
	if err := r.db.Model(&models.Image{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	images := []models.ImageMeta{}
	err := r.db.Model(&models.Image{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&images).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}
	return images, total, nil
}

// GetByID retrieves a full image row including its data URI.
func (r *GORMImageRepository) GetByID(id string) (*models.Image, error) {
	var image models.Image
	if err := r.db.First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("image %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get image %s: %w", id, err)
	}
	return &image, nil
}

// Create inserts a new image, assigning an id when none is given.
func (r *GORMImageRepository) Create(image *models.Image) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// UpdateMeta applies a metadata-only update by id and returns the updated
// row without its payload cleared.
func (r *GORMImageRepository) UpdateMeta(id string, fields map[string]interface{}) (*models.Image, error) {
	res := r.db.Model(&models.Image{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update image %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("image %s: %w", id, ErrNotFound)
	}
	return r.GetByID(id)
}

// Delete removes an image by id. A missing row is not an error.
func (r *GORMImageRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Image{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete image %s: %w", id, err)
	}
	return nil
}

// Count returns the exact number of images.
func (r *GORMImageRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Image{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return total, nil
}
