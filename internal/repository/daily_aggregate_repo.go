package repository

import (
	"ProjectShelf/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyAggregateRepo interface {
	Increment(ctx context.Context, subjectId uint64, kind model.EngagementKind, day time.Time) error
	GetTotal(ctx context.Context, subjectId uint64, kind model.EngagementKind) (int64, error)
	GetTotalForSubjects(ctx context.Context, subjectIds []uint64, kind model.EngagementKind) (int64, error)
	SetDay(ctx context.Context, subjectId uint64, kind model.EngagementKind, day time.Time, count int64) error
}

type DailyAggregateRepoImpl struct {
	db *gorm.DB
}

func NewDailyAggregateRepo(db *gorm.DB) DailyAggregateRepo {
	return &DailyAggregateRepoImpl{db: db}
}

// Increment 以单条 upsert 原子加一,避免读改写竞态
func (s *DailyAggregateRepoImpl) Increment(ctx context.Context, subjectId uint64, kind model.EngagementKind, day time.Time) error {
	row := &model.DailyAggregate{
		SubjectID: subjectId,
		Kind:      kind,
		Day:       day,
		ViewCount: 1,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "subject_id"}, {Name: "kind"}, {Name: "bucket_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count": gorm.Expr("view_count + 1"),
		}),
	}).Create(row).Error
}

func (s *DailyAggregateRepoImpl) GetTotal(ctx context.Context, subjectId uint64, kind model.EngagementKind) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.DailyAggregate{}).
		Select("COALESCE(SUM(view_count), 0)").
		Where("subject_id = ? AND kind = ?", subjectId, kind).
		Scan(&total).Error
	return total, err
}

func (s *DailyAggregateRepoImpl) GetTotalForSubjects(ctx context.Context, subjectIds []uint64, kind model.EngagementKind) (int64, error) {
	if len(subjectIds) == 0 {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).Model(&model.DailyAggregate{}).
		Select("COALESCE(SUM(view_count), 0)").
		Where("subject_id IN ? AND kind = ?", subjectIds, kind).
		Scan(&total).Error
	return total, err
}

// SetDay 用事件表重算出的计数覆盖某个桶,供对账任务使用
func (s *DailyAggregateRepoImpl) SetDay(ctx context.Context, subjectId uint64, kind model.EngagementKind, day time.Time, count int64) error {
	if count <= 0 {
		return s.db.WithContext(ctx).
			Where("subject_id = ? AND kind = ? AND bucket_date = ?", subjectId, kind, day).
			Delete(&model.DailyAggregate{}).Error
	}
	row := &model.DailyAggregate{
		SubjectID: subjectId,
		Kind:      kind,
		Day:       day,
		ViewCount: count,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "subject_id"}, {Name: "kind"}, {Name: "bucket_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count": count,
		}),
	}).Create(row).Error
}
