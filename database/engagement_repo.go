package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundspark/fundspark-backend/errs"
	"github.com/fundspark/fundspark-backend/models"
)

type EngagementRepo struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) *EngagementRepo {
	return &EngagementRepo{db}
}

// ToggleLike flips the like state for (userID, projectID) and reports whether
// a like now exists. The unique index on the pair is the source of truth
// under concurrency: when the insert loses a race it fails with a duplicate
// key, which means the opposite outcome already happened, so the read-then-act
// decision is retried exactly once.
func (r *EngagementRepo) ToggleLike(userID int64, projectID uuid.UUID) (liked bool, err error) {
	removed, err := r.removeLike(userID, projectID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	err = r.db.Create(&models.ProjectLike{UserID: userID, ProjectID: projectID}).Error
	if err == nil {
		return true, nil
	}
	if !errs.IsUniqueViolation(err) {
		return false, err
	}

	// A concurrent toggle inserted the row first; treat this attempt as the
	// removing half of the pair.
	removed, err = r.removeLike(userID, projectID)
	if err != nil {
		return false, err
	}
	return !removed, nil
}

func (r *EngagementRepo) removeLike(userID int64, projectID uuid.UUID) (bool, error) {
	var like models.ProjectLike
	err := r.db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := r.db.Delete(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

// RecordView registers that userID has seen projectID. Idempotent: the first
// occurrence wins and repeats are no-ops.
func (r *EngagementRepo) RecordView(userID int64, projectID uuid.UUID) error {
	err := r.db.
		Where(models.ProjectView{UserID: userID, ProjectID: projectID}).
		FirstOrCreate(&models.ProjectView{}).Error
	if errs.IsUniqueViolation(err) {
		// Lost a race against an identical insert; the row exists, which is
		// all this operation promises.
		return nil
	}
	return err
}

// RecordShare registers a share, rejecting repeats with a distinct
// already-shared error rather than a silent no-op.
func (r *EngagementRepo) RecordShare(userID int64, projectID uuid.UUID) error {
	var count int64
	err := r.db.Model(&models.ProjectShare{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errs.NewAlreadySharedError()
	}

	err = r.db.Create(&models.ProjectShare{UserID: userID, ProjectID: projectID}).Error
	if errs.IsUniqueViolation(err) {
		return errs.NewAlreadySharedError()
	}
	return err
}

// HasLiked reports whether userID currently likes projectID.
func (r *EngagementRepo) HasLiked(userID int64, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectLike{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

// Counts returns the like, view and share totals for a project.
func (r *EngagementRepo) Counts(projectID uuid.UUID) (likes, views, shares int64, err error) {
	if err = r.db.Model(&models.ProjectLike{}).Where("project_id = ?", projectID).Count(&likes).Error; err != nil {
		return
	}
	if err = r.db.Model(&models.ProjectView{}).Where("project_id = ?", projectID).Count(&views).Error; err != nil {
		return
	}
	err = r.db.Model(&models.ProjectShare{}).Where("project_id = ?", projectID).Count(&shares).Error
	return
}
