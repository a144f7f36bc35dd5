package repositories

import (
	"porto/internal/models"
)

// ExperienceRepository defines the interface for experience data access.
type ExperienceRepository interface {
	List(limit, offset int) ([]models.Experience, int64, error)
	Create(experience *models.Experience) error
	Update(id string, fields map[string]interface{}) (*models.Experience, error)
	Delete(id string) error
	Count() (int64, error)
}
