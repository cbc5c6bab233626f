package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Email     string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_email" json:"email"`
	Username  string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_username" json:"username"`
	Name      string  `gorm:"type:varchar(100);not null" json:"name"`
	Password  string  `gorm:"type:varchar(255);not null" json:"-"`
	Bio       *string `gorm:"type:text" json:"bio"`
	AvatarURL *string `gorm:"type:varchar(512)" json:"avatar_url"`
	Role      string  `gorm:"type:varchar(16);not null;default:VISITOR" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Projects []Project `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
