package repositories

import (
	"porto/internal/models"
)

// ProjectListParams are the filters for a project listing.
type ProjectListParams struct {
	Query  string   // substring search over title and description
	Stack  []string // contains-all filter over the stack list
	Limit  int
	Offset int
}

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	List(params ProjectListParams) ([]models.Project, int64, error)
	Featured(limit int) ([]models.Project, error)
	Create(project *models.Project) error
	Update(id string, fields map[string]interface{}) (*models.Project, error)
	Delete(id string) error
	Count() (int64, error)
}
