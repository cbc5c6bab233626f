package repository

import (
	"ProjectShelf/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type SubjectCount struct {
	SubjectID uint64 `gorm:"column:subject_id"`
	Count     int64  `gorm:"column:count"`
}

type EngagementEventRepo interface {
	Append(ctx context.Context, event *model.EngagementEvent) error
	AppendBatch(ctx context.Context, events []*model.EngagementEvent) error
	QueryBySubject(ctx context.Context, subjectId uint64, kind model.EngagementKind, from, to time.Time) ([]*model.EngagementEvent, error)
	QueryByOwner(ctx context.Context, ownerId uint64, kind model.EngagementKind, from, to time.Time) ([]*model.EngagementEvent, error)
	CountBySubject(ctx context.Context, subjectId uint64, kind model.EngagementKind, from, to time.Time) (int64, error)
	CountDistinctViewersBySubject(ctx context.Context, subjectId uint64, kind model.EngagementKind, from, to time.Time) (int64, error)
	CountDistinctViewersByOwner(ctx context.Context, ownerId uint64, kind model.EngagementKind, from, to time.Time) (int64, error)
	BreakdownByOwner(ctx context.Context, ownerId uint64, kind model.EngagementKind, from, to time.Time) ([]*SubjectCount, error)
	HasAnyForOwner(ctx context.Context, ownerId uint64) (bool, error)
}

type EngagementEventRepoImpl struct {
	db *gorm.DB
}

func NewEngagementEventRepo(db *gorm.DB) EngagementEventRepo {
	return &EngagementEventRepoImpl{db: db}
}

// Append 追加一条事件,事件表只增不改
func (s *EngagementEventRepoImpl) Append(ctx context.Context, event *model.EngagementEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *EngagementEventRepoImpl) AppendBatch(ctx context.Context, events []*model.EngagementEvent) error {
	if len(events) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(events, 200).Error
}

// QueryBySubject 按发生时间升序返回 [from, to) 内的事件
func (s *EngagementEventRepoImpl) QueryBySubject(ctx context.Context, subjectId uint64, kind model.EngagementKind, from, to time.Time) ([]*model.EngagementEvent, error) {
	events := make([]*model.EngagementEvent, 0)
	err := s.db.WithContext(ctx).
		Where("subject_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", subjectId, kind, from, to).
		Order("occurred_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EngagementEventRepoImpl) QueryByOwner(ctx context.Context, ownerId uint64, kind model.EngagementKind, from, to time.Time) ([]*model.EngagementEvent, error) {
	events := make([]*model.EngagementEvent, 0)
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", ownerId, kind, from, to).
		Order("occurred_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EngagementEventRepoImpl) CountBySubject(ctx context.Context, subjectId uint64, kind model.EngagementKind, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Where("subject_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", subjectId, kind, from, to).
		Count(&count).Error
	return count, err
}

func (s *EngagementEventRepoImpl) CountDistinctViewersBySubject(ctx context.Context, subjectId uint64, kind model.EngagementKind, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Distinct("viewer_id").
		Where("subject_id = ? AND kind = ? AND viewer_id IS NOT NULL AND occurred_at >= ? AND occurred_at < ?", subjectId, kind, from, to).
		Count(&count).Error
	return count, err
}

func (s *EngagementEventRepoImpl) CountDistinctViewersByOwner(ctx context.Context, ownerId uint64, kind model.EngagementKind, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Distinct("viewer_id").
		Where("owner_id = ? AND kind = ? AND viewer_id IS NOT NULL AND occurred_at >= ? AND occurred_at < ?", ownerId, kind, from, to).
		Count(&count).Error
	return count, err
}

// BreakdownByOwner 按主体聚合事件数,次数降序,同次数按主体 ID 升序
func (s *EngagementEventRepoImpl) BreakdownByOwner(ctx context.Context, ownerId uint64, kind model.EngagementKind, from, to time.Time) ([]*SubjectCount, error) {
	rows := make([]*SubjectCount, 0)
	err := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Select("subject_id, COUNT(*) AS count").
		Where("owner_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", ownerId, kind, from, to).
		Group("subject_id").
		Order("count DESC, subject_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EngagementEventRepoImpl) HasAnyForOwner(ctx context.Context, ownerId uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Where("owner_id = ?", ownerId).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
