package models

import "github.com/google/uuid"

// Engagement relations link one user to one project. The composite unique
// index on (user_id, project_id) is the source of truth under concurrent
// requests: a duplicate-key failure means the row already exists.

type ProjectLike struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	UserID    int64     `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_project_likes_user_project"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_likes_user_project;index:idx_project_likes_project_id"`

	User    User    `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProjectLike) TableName() string {
	return "project_likes"
}

type ProjectView struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	UserID    int64     `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_project_views_user_project"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_views_user_project;index:idx_project_views_project_id"`

	User    User    `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProjectView) TableName() string {
	return "project_views"
}

type ProjectShare struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	UserID    int64     `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_project_shares_user_project"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_shares_user_project;index:idx_project_shares_project_id"`

	User    User    `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProjectShare) TableName() string {
	return "project_shares"
}
