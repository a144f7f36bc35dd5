package services

import (
	"porto/internal/models"
	"porto/internal/repositories"
)

// featuredLimit caps the featured-projects shortcut listing.
const featuredLimit = 6

// ProjectService handles business logic related to projects.
type ProjectService struct {
	repo repositories.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo repositories.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// List retrieves a filtered page of projects with the exact matching total.
func (s *ProjectService) List(params repositories.ProjectListParams) ([]models.Project, int64, error) {
	return s.repo.List(params)
}

// Featured retrieves the newest featured projects.
func (s *ProjectService) Featured() ([]models.Project, error) {
	return s.repo.Featured(featuredLimit)
}

// Create creates a new project.
func (s *ProjectService) Create(project *models.Project) error {
	return s.repo.Create(project)
}

// Update applies a partial update. Only known columns pass through; list
// values are normalized for storage.
func (s *ProjectService) Update(id string, data map[string]interface{}) (*models.Project, error) {
	fields := pickFields(data, "title", "description", "stack", "featured")
	if stack, ok := fields["stack"]; ok {
		fields["stack"] = toStringList(stack)
	}
	if len(fields) == 0 {
		return nil, ErrNoUpdatableFields
	}
	return s.repo.Update(id, fields)
}

// Delete deletes a project by id.
func (s *ProjectService) Delete(id string) error {
	return s.repo.Delete(id)
}
