package model

import (
	"time"
)

// DailyAggregate 按 (subject, kind, 日桶) 维护的浏览量汇总。
// Day 为基准时区下的日期，计数只增不减，事件日志是最终事实来源
type DailyAggregate struct {
	ID        uint64         `gorm:"primaryKey"`
	SubjectID uint64         `gorm:"not null;uniqueIndex:idx_subject_kind_day,priority:1" json:"subject_id"`
	Kind      EngagementKind `gorm:"type:tinyint;not null;uniqueIndex:idx_subject_kind_day,priority:2" json:"kind"`
	Day       time.Time      `gorm:"not null;uniqueIndex:idx_subject_kind_day,priority:3;column:bucket_date" json:"day"`
	ViewCount int64          `gorm:"not null;default:0" json:"view_count"`
	CreatedAt time.Time      `json:"created_at"`
}

func (DailyAggregate) TableName() string {
	return "daily_aggregates"
}
