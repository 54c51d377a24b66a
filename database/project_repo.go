package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundspark/fundspark-backend/models"
)

type ProjectRepo struct {
	db            *gorm.DB
	trigramSearch bool
}

func NewProjectRepo(db *gorm.DB, trigramSearch bool) *ProjectRepo {
	return &ProjectRepo{db: db, trigramSearch: trigramSearch}
}

// FindByID returns a project with its owner preloaded, or nil when no such
// project exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("User").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByUser returns all projects owned by userID, newest first.
func (r *ProjectRepo) FindByUser(userID int64) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("user_id = ?", userID).Order("created_time DESC").Find(&projects).Error
	return projects, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id. Engagement rows cascade.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// MostViewed returns the top projects ranked by distinct viewer count.
func (r *ProjectRepo) MostViewed(limit int) ([]*models.Project, error) {
	return r.topByEngagement("project_views", limit)
}

// MostLiked returns the top projects ranked by like count.
func (r *ProjectRepo) MostLiked(limit int) ([]*models.Project, error) {
	return r.topByEngagement("project_likes", limit)
}

func (r *ProjectRepo) topByEngagement(relation string, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Model(&models.Project{}).
		Select("projects.*, COUNT("+relation+".id) AS engagement_count").
		Joins("LEFT JOIN "+relation+" ON "+relation+".project_id = projects.id").
		Group("projects.id").
		Order("engagement_count DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
