package repositories

import (
	"errors"
	"fmt"

	"porto/internal/models"

	"gorm.io/gorm"
)

// GORMAdminRepository is a GORM implementation of AdminRepository.
type GORMAdminRepository struct {
	db *gorm.DB
}

// NewGORMAdminRepository creates a new instance of GORMAdminRepository.
func NewGORMAdminRepository(db *gorm.DB) *GORMAdminRepository {
	return &GORMAdminRepository{db: db}
}

// IsAdmin reports whether the allowlist has a row for the user id.
func (r *GORMAdminRepository) IsAdmin(userID string) (bool, error) {
	var total int64
	err := r.db.Model(&models.AdminEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return false, fmt.Errorf("failed to check admin entry for %s: %w", userID, err)
	}
	return total > 0, nil
}

// EmailByUsername resolves an admin username to its login email.
func (r *GORMAdminRepository) EmailByUsername(username string) (string, error) {
	var entry models.AdminEntry
	if err := r.db.First(&entry, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("admin username %s: %w", username, ErrNotFound)
		}
		return "", fmt.Errorf("failed to look up admin username %s: %w", username, err)
	}
	return entry.Email, nil
}
