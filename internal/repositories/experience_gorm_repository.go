package repositories

import (
	"fmt"

	"porto/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMExperienceRepository is a GORM implementation of ExperienceRepository.
type GORMExperienceRepository struct {
	db *gorm.DB
}

// NewGORMExperienceRepository creates a new instance of GORMExperienceRepository.
func NewGORMExperienceRepository(db *gorm.DB) *GORMExperienceRepository {
	return &GORMExperienceRepository{db: db}
}

// List retrieves a page of experiences ordered by start date, newest first,
// with the exact total.
func (r *GORMExperienceRepository) List(limit, offset int) ([]models.Experience, int64, error) {
	var total int64
	if err := r.db.Model(&models.Experience{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count experiences: %w", err)
	}

	experiences := []models.Experience{}
	err := r.db.
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&experiences).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list experiences: %w", err)
	}
	return experiences, total, nil
}

// Create inserts a new experience, assigning an id when none is given.
func (r *GORMExperienceRepository) Create(experience *models.Experience) error {
	if experience.ID == "" {
		experience.ID = uuid.New().String()
	}
	if err := r.db.Create(experience).Error; err != nil {
		return fmt.Errorf("failed to create experience: %w", err)
	}
	return nil
}

// Update applies a partial update by id and returns the updated row.
func (r *GORMExperienceRepository) Update(id string, fields map[string]interface{}) (*models.Experience, error) {
	res := r.db.Model(&models.Experience{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update experience %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("experience %s: %w", id, ErrNotFound)
	}

	var experience models.Experience
	if err := r.db.First(&experience, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload experience %s: %w", id, err)
	}
	return &experience, nil
}

// Delete removes an experience by id. A missing row is not an error.
func (r *GORMExperienceRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Experience{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete experience %s: %w", id, err)
	}
	return nil
}

// Count returns the exact number of experiences.
func (r *GORMExperienceRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Experience{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count experiences: %w", err)
	}
	return total, nil
}
