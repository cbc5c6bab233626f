package job

import (
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/logger"
	"ProjectShelf/internal/pkg/redis"
	"ProjectShelf/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// AggregateReconcileJob 重放脏桶,让日聚合与事件表重新对齐。
// 聚合增量失败只记日志,这里是最终的修复通道。
type AggregateReconcileJob struct {
	analyticsSvc service.AnalyticsService
	loc          *time.Location
}

func NewAggregateReconcileJob(analyticsSvc service.AnalyticsService, loc *time.Location) *AggregateReconcileJob {
	if loc == nil {
		loc = time.UTC
	}
	return &AggregateReconcileJob{
		analyticsSvc: analyticsSvc,
		loc:          loc,
	}
}

func (s *AggregateReconcileJob) Run() {
	traceID := "job-reconcile-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.AnalyticsDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.AnalyticsDirtyKey, processingKey)
	if err != nil {
		return
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get analytics dirty set error", "err", err)
		return
	}

	rebuilt := 0
	for _, member := range members {
		subjectID, kind, day, err := service.ParseDirtyMember(member, s.loc)
		if err != nil {
			log.WarnContext(ctx, "skip malformed dirty member", "member", member, "err", err)
			continue
		}

		if err := s.analyticsSvc.RebuildBucket(ctx, subjectID, kind, day); err != nil {
			log.ErrorContext(ctx, "rebuild aggregate bucket error",
				"subject_id", subjectID, "kind", kind, "day", day.Format(time.DateOnly), "err", err)
			// 失败的桶留到下一轮
			_ = redis.SAdd(ctx, consts.AnalyticsDirtyKey, member)
			continue
		}
		rebuilt++
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete analytics processing set error", "err", err)
	}

	log.InfoContext(ctx, "reconcile daily aggregates success",
		"dirty_count", len(members),
		"rebuilt_count", rebuilt)
}
