package model

import (
	"time"
)

// EngagementKind 统计事件类型
type EngagementKind int8

const (
	KindProjectView    EngagementKind = 1
	KindPortfolioVisit EngagementKind = 2
)

func (k EngagementKind) Valid() bool {
	return k == KindProjectView || k == KindPortfolioVisit
}

// EngagementEvent 单次浏览/访问事件，只追加不修改
type EngagementEvent struct {
	ID         uint64         `gorm:"primaryKey" json:"id"`
	Kind       EngagementKind `gorm:"type:tinyint;not null;index:idx_subject_kind_time,priority:2;index:idx_owner_kind_time,priority:2" json:"kind"`
	SubjectID  uint64         `gorm:"not null;index:idx_subject_kind_time,priority:1" json:"subject_id"`
	OwnerID    uint64         `gorm:"not null;index:idx_owner_kind_time,priority:1" json:"owner_id"`
	ViewerID   *uint64        `json:"viewer_id"`
	OccurredAt time.Time      `gorm:"not null;index:idx_subject_kind_time,priority:3;index:idx_owner_kind_time,priority:3" json:"occurred_at"`
}

func (EngagementEvent) TableName() string {
	return "engagement_events"
}
