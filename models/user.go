package models

import "time"

// User is created on first successful widget login and refreshed on every
// subsequent one. Users are never deleted in the normal flow.
type User struct {
	ID          int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	TelegramID  int64     `json:"telegram_id" db:"telegram_id" gorm:"not null;uniqueIndex:idx_users_telegram_id"`
	FirstName   string    `json:"first_name" db:"first_name" gorm:"type:varchar(255);not null"`
	LastName    *string   `json:"last_name,omitempty" db:"last_name" gorm:"type:varchar(255)"`
	Username    *string   `json:"username,omitempty" db:"username" gorm:"type:varchar(255)"`
	PhotoURL    *string   `json:"photo_url,omitempty" db:"photo_url" gorm:"type:text"`
	CreatedTime time.Time `json:"created_time" db:"created_time" gorm:"type:timestamptz;not null;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
