package model

import (
	"time"
)

type Project struct {
	ID           uint64       `gorm:"primaryKey" json:"id"`
	UserID       uint64       `gorm:"not null;index:idx_user_id;uniqueIndex:idx_user_slug,priority:1" json:"user_id"`
	Title        string       `gorm:"type:varchar(255);not null" json:"title"`
	Description  string       `gorm:"type:text;not null" json:"description"`
	Slug         string       `gorm:"type:varchar(255);uniqueIndex:idx_user_slug,priority:2" json:"slug"`
	Content      string       `gorm:"type:longtext" json:"content"`
	Overview     string       `gorm:"type:text" json:"overview"`
	CoverImage   *string      `gorm:"type:varchar(512)" json:"cover_image"`
	Timeline     TimelineList `gorm:"type:json" json:"timeline"`
	Technologies StringList   `gorm:"type:json" json:"technologies"`
	Outcomes     OutcomeList  `gorm:"type:json" json:"outcomes"`
	IsPublished  bool         `gorm:"type:tinyint(1);not null;default:0" json:"is_published"`
	PublishedAt  *time.Time   `json:"published_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// 关联关系
	User  User           `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Media []ProjectMedia `gorm:"foreignKey:ProjectID;references:ID" json:"media"`
}

func (Project) TableName() string {
	return "projects"
}
