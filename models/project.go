package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project holds the verbatim block sequence as opaque JSON plus the summary
// fields denormalized from its first two blocks.
type Project struct {
	ID            uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID        int64          `json:"user_id" db:"user_id" gorm:"not null;index:idx_projects_user_id"`
	Data          datatypes.JSON `json:"data" db:"data" gorm:"type:jsonb;not null"`
	Title         string         `json:"title" db:"title" gorm:"type:text;not null"`
	Subtitle      string         `json:"subtitle" db:"subtitle" gorm:"type:text;not null"`
	ImageURL      *string        `json:"image_url,omitempty" db:"image_url" gorm:"type:text"`
	RequiredFunds int64          `json:"required_funds" db:"required_funds" gorm:"not null"`
	CreatedTime   time.Time      `json:"created_time" db:"created_time" gorm:"type:timestamptz;not null;autoCreateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
