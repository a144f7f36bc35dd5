package services

import (
	"porto/internal/models"
	"porto/internal/repositories"
)

// ExperienceService handles business logic related to work experiences.
type ExperienceService struct {
	repo repositories.ExperienceRepository
}

// NewExperienceService creates a new ExperienceService.
func NewExperienceService(repo repositories.ExperienceRepository) *ExperienceService {
	return &ExperienceService{repo: repo}
}

// List retrieves a page of experiences with the exact total.
func (s *ExperienceService) List(limit, offset int) ([]models.Experience, int64, error) {
	return s.repo.List(limit, offset)
}

// Create creates a new experience.
func (s *ExperienceService) Create(experience *models.Experience) error {
	return s.repo.Create(experience)
}

// Update applies a partial update over the known columns.
func (s *ExperienceService) Update(id string, data map[string]interface{}) (*models.Experience, error) {
	fields := pickFields(data, "title", "company", "description", "start_date", "end_date")
	if len(fields) == 0 {
		return nil, ErrNoUpdatableFields
	}
	return s.repo.Update(id, fields)
}

// Delete deletes an experience by id.
func (s *ExperienceService) Delete(id string) error {
	return s.repo.Delete(id)
}
