package model

import (
	"time"
)

type ProjectMedia struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ProjectID uint64    `gorm:"not null;index:idx_project_id_sort" json:"project_id"`
	MediaURL  string    `gorm:"type:varchar(512);not null" json:"media_url"`
	MediaType string    `gorm:"type:varchar(16);not null" json:"media_type"` // IMAGE / VIDEO
	Caption   *string   `gorm:"type:varchar(255)" json:"caption"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	Width     int       `gorm:"not null;default:0" json:"width"`
	Height    int       `gorm:"not null;default:0" json:"height"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectMedia) TableName() string {
	return "project_media"
}
