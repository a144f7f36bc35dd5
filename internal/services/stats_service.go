package services

import (
	"porto/internal/models"
	"porto/internal/repositories"
)

// StatsService aggregates exact per-collection counts.
type StatsService struct {
	projectRepo    repositories.ProjectRepository
	imageRepo      repositories.ImageRepository
	messageRepo    repositories.MessageRepository
	commentRepo    repositories.CommentRepository
	experienceRepo repositories.ExperienceRepository
	blogRepo       repositories.BlogRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	projectRepo repositories.ProjectRepository,
	imageRepo repositories.ImageRepository,
	messageRepo repositories.MessageRepository,
	commentRepo repositories.CommentRepository,
	experienceRepo repositories.ExperienceRepository,
	blogRepo repositories.BlogRepository,
) *StatsService {
	return &StatsService{
		projectRepo:    projectRepo,
		imageRepo:      imageRepo,
		messageRepo:    messageRepo,
		commentRepo:    commentRepo,
		experienceRepo: experienceRepo,
		blogRepo:       blogRepo,
	}
}

// Collect computes each collection count independently and combines them.
func (s *StatsService) Collect() (*models.Stats, error) {
	stats := &models.Stats{}
	var err error

	if stats.Projects, err = s.projectRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Images, err = s.imageRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Unread, err = s.messageRepo.CountUnread(); err != nil {
		return nil, err
	}
	if stats.Experiences, err = s.experienceRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.commentRepo.Count(); err != nil {
		return nil, err
	}
	if stats.BlogPosts, err = s.blogRepo.Count(); err != nil {
		return nil, err
	}
	return stats, nil
}
