package dto

import (
	"ProjectShelf/internal/model"
	"time"
)

// SaveDraftDTO 保存草稿,ID 为空时新建
type SaveDraftDTO struct {
	ID           *uint64               `json:"id,omitempty"`
	Title        string                `json:"title" validate:"required,min=1,max=120"`
	Description  string                `json:"description" validate:"max=500"`
	Slug         *string               `json:"slug,omitempty" validate:"omitempty,max=120"`
	Content      string                `json:"content"`
	Overview     string                `json:"overview" validate:"max=1000"`
	CoverImage   *string               `json:"cover_image,omitempty"`
	Timeline     []model.TimelineEntry `json:"timeline,omitempty"`
	Technologies []string              `json:"technologies,omitempty"`
	Outcomes     []model.OutcomeEntry  `json:"outcomes,omitempty"`
	Media        []*MediaItemDTO       `json:"media,omitempty"`
	RemovedMedia []uint64              `json:"removed_media,omitempty"`
}

// MediaItemDTO 项目媒体,ID 为空时新增
type MediaItemDTO struct {
	ID        uint64  `json:"id,omitempty"`
	MediaURL  string  `json:"media_url" validate:"required"`
	MediaType string  `json:"media_type" validate:"required,oneof=IMAGE VIDEO"`
	Caption   *string `json:"caption,omitempty" validate:"omitempty,max=300"`
	SortOrder int     `json:"sort_order"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
}

// UpdateMediaDTO 修改媒体的说明或排序
type UpdateMediaDTO struct {
	Caption   *string `json:"caption,omitempty" validate:"omitempty,max=300"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// TimelineUpdateDTO 整体替换时间线
type TimelineUpdateDTO struct {
	Timeline []model.TimelineEntry `json:"timeline" validate:"required"`
}

// TechnologiesUpdateDTO 整体替换技术栈
type TechnologiesUpdateDTO struct {
	Technologies []string `json:"technologies" validate:"required"`
}

// OutcomesUpdateDTO 整体替换成果
type OutcomesUpdateDTO struct {
	Outcomes []model.OutcomeEntry `json:"outcomes" validate:"required"`
}

// ProjectDTO 项目详情
type ProjectDTO struct {
	ID           uint64                `json:"id"`
	UserID       uint64                `json:"user_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Slug         string                `json:"slug"`
	Content      string                `json:"content,omitempty"`
	Overview     string                `json:"overview,omitempty"`
	CoverImage   *string               `json:"cover_image,omitempty"`
	Timeline     []model.TimelineEntry `json:"timeline,omitempty"`
	Technologies []string              `json:"technologies,omitempty"`
	Outcomes     []model.OutcomeEntry  `json:"outcomes,omitempty"`
	IsPublished  bool                  `json:"is_published"`
	PublishedAt  *time.Time            `json:"published_at,omitempty"`
	Media        []*MediaItemDTO       `json:"media,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ProjectSummaryDTO 列表场景的精简项目
type ProjectSummaryDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Slug        string     `json:"slug"`
	CoverImage  *string    `json:"cover_image,omitempty"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
