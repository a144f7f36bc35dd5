package repositories

import (
	"fmt"
	"time"

	"porto/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProjectRepository is a GORM implementation of ProjectRepository.
type GORMProjectRepository struct {
	db *gorm.DB
}

// NewGORMProjectRepository creates a new instance of GORMProjectRepository.
func NewGORMProjectRepository(db *gorm.DB) *GORMProjectRepository {
	return &GORMProjectRepository{db: db}
}

// List retrieves a page of projects plus the exact count of rows matching
// the same filters.
func (r *GORMProjectRepository) List(params ProjectListParams) ([]models.Project, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.db.Model(&models.Project{})
		tx = applySearch(tx, params.Query, "title", "description")
		return applyContainsAll(tx, "stack", params.Stack)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	projects := []models.Project{}
	err := filtered().
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Featured retrieves the newest featured projects.
func (r *GORMProjectRepository) Featured(limit int) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.
		Where("featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured projects: %w", err)
	}
	return projects, nil
}

// Create inserts a new project, assigning an id when none is given.
func (r *GORMProjectRepository) Create(project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Update applies a partial update by id and returns the updated row.
func (r *GORMProjectRepository) Update(id string, fields map[string]interface{}) (*models.Project, error) {
	fields["updated_at"] = time.Now()
	res := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload project %s: %w", id, err)
	}
	return &project, nil
}

// Delete removes a project by id. A missing row is not an error.
func (r *GORMProjectRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

// Count returns the exact number of projects.
func (r *GORMProjectRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return total, nil
}
