package service

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/model"
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/redis"
	"ProjectShelf/internal/pkg/util"
	"ProjectShelf/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

type AnalyticsService interface {
	// RecordProjectView 记录一次项目浏览,访问者为项目主人时抑制
	RecordProjectView(ctx context.Context, projectID uint64, viewerID *uint64) (*dto.RecordResultDTO, error)
	// RecordPortfolioVisit 记录一次作品集访问,访问者为本人时抑制
	RecordPortfolioVisit(ctx context.Context, userID uint64, viewerID *uint64) (*dto.RecordResultDTO, error)
	// GetProjectViewStats 项目浏览统计看板,projectID 为空时含按项目拆分
	GetProjectViewStats(ctx context.Context, ownerID uint64, period string, projectID *uint64) (*dto.StatsDTO, error)
	// GetPortfolioVisitStats 作品集访问统计看板
	GetPortfolioVisitStats(ctx context.Context, ownerID uint64, period string) (*dto.StatsDTO, error)
	GetProjectTotals(ctx context.Context, projectID uint64) (*dto.TotalsDTO, error)
	// GetOwnerProjectTotals 创作者名下全部项目的累计浏览数
	GetOwnerProjectTotals(ctx context.Context, ownerID uint64) (*dto.TotalsDTO, error)
	GetPortfolioTotals(ctx context.Context, userID uint64) (*dto.TotalsDTO, error)
	// RebuildBucket 从事件表重算一个日桶,供对账任务回调
	RebuildBucket(ctx context.Context, subjectID uint64, kind model.EngagementKind, day time.Time) error
	// SeedSampleData 为没有任何事件的创作者生成近 7 天示例数据
	SeedSampleData(ctx context.Context, ownerID uint64) (*dto.SeedResultDTO, error)
}

type AnalyticsServiceImpl struct {
	eventRepo       repository.EngagementEventRepo
	aggRepo         repository.DailyAggregateRepo
	projectRepo     repository.ProjectRepo
	userRepo        repository.UserRepo
	loc             *time.Location
	totalsTTL       time.Duration
	statsCacheDaily bool
}

func NewAnalyticsService(
	eventRepo repository.EngagementEventRepo,
	aggRepo repository.DailyAggregateRepo,
	projectRepo repository.ProjectRepo,
	userRepo repository.UserRepo,
	loc *time.Location,
	totalsTTL time.Duration,
	statsCacheDaily bool,
) AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	if totalsTTL <= 0 {
		totalsTTL = 5 * time.Minute
	}
	return &AnalyticsServiceImpl{
		eventRepo:       eventRepo,
		aggRepo:         aggRepo,
		projectRepo:     projectRepo,
		userRepo:        userRepo,
		loc:             loc,
		totalsTTL:       totalsTTL,
		statsCacheDaily: statsCacheDaily,
	}
}

func (s *AnalyticsServiceImpl) RecordProjectView(ctx context.Context, projectID uint64, viewerID *uint64) (*dto.RecordResultDTO, error) {
	if projectID == 0 {
		return nil, ErrParamInvalid
	}
	project, err := s.projectRepo.GetProjectById(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return s.record(ctx, model.KindProjectView, projectID, project.UserID, viewerID, time.Now())
}

func (s *AnalyticsServiceImpl) RecordPortfolioVisit(ctx context.Context, userID uint64, viewerID *uint64) (*dto.RecordResultDTO, error) {
	if userID == 0 {
		return nil, ErrParamInvalid
	}
	exists, err := s.userRepo.ExistsById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return s.record(ctx, model.KindPortfolioVisit, userID, userID, viewerID, time.Now())
}

// record 先追加事件再更新日聚合;追加失败整体失败,聚合失败只记日志,
// 留给对账任务修复,事件表是唯一事实来源
func (s *AnalyticsServiceImpl) record(ctx context.Context, kind model.EngagementKind, subjectID, ownerID uint64, viewerID *uint64, occurredAt time.Time) (*dto.RecordResultDTO, error) {
	if viewerID != nil && *viewerID == ownerID {
		return &dto.RecordResultDTO{Recorded: false}, nil
	}

	event := &model.EngagementEvent{
		Kind:       kind,
		SubjectID:  subjectID,
		OwnerID:    ownerID,
		ViewerID:   viewerID,
		OccurredAt: occurredAt,
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		return nil, err
	}

	day := util.GetMidnightIn(occurredAt, s.loc)
	if err := s.aggRepo.Increment(ctx, subjectID, kind, day); err != nil {
		log.Error("daily aggregate increment failed",
			"err", err, "kind", kind, "subject_id", subjectID, "day", day.Format(time.DateOnly))
	}

	_ = redis.SAdd(ctx, consts.AnalyticsDirtyKey, dirtyMember(subjectID, kind, day))
	s.invalidateCaches(ctx, kind, subjectID, ownerID)

	return &dto.RecordResultDTO{Recorded: true}, nil
}

func (s *AnalyticsServiceImpl) GetProjectViewStats(ctx context.Context, ownerID uint64, period string, projectID *uint64) (*dto.StatsDTO, error) {
	if projectID != nil {
		project, err := s.projectRepo.GetProjectById(ctx, *projectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, ErrProjectNotFound
		}
		if project.UserID != ownerID {
			return nil, UnauthorizedError
		}
	}
	return s.getStats(ctx, ownerID, model.KindProjectView, period, projectID)
}

func (s *AnalyticsServiceImpl) GetPortfolioVisitStats(ctx context.Context, ownerID uint64, period string) (*dto.StatsDTO, error) {
	return s.getStats(ctx, ownerID, model.KindPortfolioVisit, period, nil)
}

func (s *AnalyticsServiceImpl) getStats(ctx context.Context, ownerID uint64, kind model.EngagementKind, period string, subjectFilter *uint64) (*dto.StatsDTO, error) {
	now := time.Now()
	from, err := s.periodStart(period, now)
	if err != nil {
		return nil, err
	}

	key := statsCacheKey(ownerID, kind, period, subjectFilter)
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var res dto.StatsDTO
		_ = json.Unmarshal([]byte(val), &res)
		return &res, nil
	}

	res := &dto.StatsDTO{
		Period:      period,
		To:          now.In(s.loc).Format(time.DateOnly),
		DailySeries: make([]*dto.DailyPointDTO, 0),
	}

	// 时钟偏移或坏输入,按空结果返回而不报错
	if from.After(now) {
		res.From = res.To
		return res, nil
	}

	var events []*model.EngagementEvent
	if subjectFilter != nil {
		events, err = s.eventRepo.QueryBySubject(ctx, *subjectFilter, kind, from, now)
	} else {
		events, err = s.eventRepo.QueryByOwner(ctx, ownerID, kind, from, now)
	}
	if err != nil {
		return nil, err
	}

	// all 周期的序列从首个事件所在日开始,避免铺满空桶
	firstDay := util.GetMidnightIn(now, s.loc)
	if !from.IsZero() {
		firstDay = util.GetMidnightIn(from, s.loc)
	} else if len(events) > 0 {
		firstDay = util.GetMidnightIn(events[0].OccurredAt, s.loc)
	}
	res.From = firstDay.Format(time.DateOnly)

	counts := make(map[string]int64)
	for _, e := range events {
		counts[util.GetMidnightIn(e.OccurredAt, s.loc).Format(time.DateOnly)]++
	}

	lastDay := util.GetMidnightIn(now, s.loc)
	for d := firstDay; !d.After(lastDay); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(time.DateOnly)
		res.DailySeries = append(res.DailySeries, &dto.DailyPointDTO{
			Date:  dateStr,
			Count: counts[dateStr],
		})
	}

	res.TotalCount = int64(len(events))

	var unique int64
	if subjectFilter != nil {
		unique, err = s.eventRepo.CountDistinctViewersBySubject(ctx, *subjectFilter, kind, from, now)
	} else {
		unique, err = s.eventRepo.CountDistinctViewersByOwner(ctx, ownerID, kind, from, now)
	}
	if err != nil {
		return nil, err
	}
	res.UniqueViewerCount = unique

	if kind == model.KindProjectView && subjectFilter == nil {
		breakdown, err := s.buildBreakdown(ctx, ownerID, from, now)
		if err != nil {
			return nil, err
		}
		res.Breakdown = breakdown
	}

	if s.statsCacheDaily {
		_ = redis.SetWithMidnightExpiration(ctx, key, res, s.loc)
	}

	return res, nil
}

func (s *AnalyticsServiceImpl) buildBreakdown(ctx context.Context, ownerID uint64, from, to time.Time) ([]*dto.BreakdownItemDTO, error) {
	rows, err := s.eventRepo.BreakdownByOwner(ctx, ownerID, model.KindProjectView, from, to)
	if err != nil {
		return nil, err
	}

	titles := make(map[uint64]string)
	projects, err := s.projectRepo.ListProjectsByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	breakdown := make([]*dto.BreakdownItemDTO, 0, len(rows))
	for _, r := range rows {
		breakdown = append(breakdown, &dto.BreakdownItemDTO{
			ProjectID: r.SubjectID,
			Title:     titles[r.SubjectID],
			Count:     r.Count,
		})
	}
	return breakdown, nil
}

func (s *AnalyticsServiceImpl) GetProjectTotals(ctx context.Context, projectID uint64) (*dto.TotalsDTO, error) {
	project, err := s.projectRepo.GetProjectById(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return s.getTotals(ctx, projectID, model.KindProjectView, consts.ProjectTotalViewsKey)
}

// GetOwnerProjectTotals 跨名下所有项目求和,含未发布期间攒下的历史浏览
func (s *AnalyticsServiceImpl) GetOwnerProjectTotals(ctx context.Context, ownerID uint64) (*dto.TotalsDTO, error) {
	exists, err := s.userRepo.ExistsById(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	key := consts.OwnerProjectViewsKey + strconv.FormatUint(ownerID, 10)
	if total, err := redis.GetInt64(ctx, key); err == nil {
		return &dto.TotalsDTO{SubjectID: ownerID, Total: total}, nil
	}

	projects, err := s.projectRepo.ListProjectsByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	total, err := s.aggRepo.GetTotalForSubjects(ctx, ids, model.KindProjectView)
	if err != nil {
		return nil, err
	}
	_ = redis.SetWithExpiration(ctx, key, total, s.totalsTTL)

	return &dto.TotalsDTO{SubjectID: ownerID, Total: total}, nil
}

func (s *AnalyticsServiceImpl) GetPortfolioTotals(ctx context.Context, userID uint64) (*dto.TotalsDTO, error) {
	exists, err := s.userRepo.ExistsById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return s.getTotals(ctx, userID, model.KindPortfolioVisit, consts.PortfolioTotalViewsKey)
}

func (s *AnalyticsServiceImpl) getTotals(ctx context.Context, subjectID uint64, kind model.EngagementKind, keyPrefix string) (*dto.TotalsDTO, error) {
	key := keyPrefix + strconv.FormatUint(subjectID, 10)
	if total, err := redis.GetInt64(ctx, key); err == nil {
		return &dto.TotalsDTO{SubjectID: subjectID, Total: total}, nil
	}

	total, err := s.aggRepo.GetTotal(ctx, subjectID, kind)
	if err != nil {
		return nil, err
	}
	_ = redis.SetWithExpiration(ctx, key, total, s.totalsTTL)

	return &dto.TotalsDTO{SubjectID: subjectID, Total: total}, nil
}

// RebuildBucket 以事件表计数覆盖聚合行,恢复两表一致
func (s *AnalyticsServiceImpl) RebuildBucket(ctx context.Context, subjectID uint64, kind model.EngagementKind, day time.Time) error {
	count, err := s.eventRepo.CountBySubject(ctx, subjectID, kind, day, day.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	return s.aggRepo.SetDay(ctx, subjectID, kind, day, count)
}

func (s *AnalyticsServiceImpl) SeedSampleData(ctx context.Context, ownerID uint64) (*dto.SeedResultDTO, error) {
	exists, err := s.userRepo.ExistsById(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	// 分布式锁防止同一创作者并发播种,无 redis 时退化为仅查重
	lockKey := consts.SeedLock + strconv.FormatUint(ownerID, 10)
	lockValue := uuid.NewString()
	if ok, err := redis.TryLock(ctx, lockKey, lockValue, 30*time.Second, 1); err == nil {
		if !ok {
			return nil, ErrSeedDataExists
		}
		defer redis.UnLock(ctx, lockKey, lockValue)
	}

	hasAny, err := s.eventRepo.HasAnyForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if hasAny {
		return nil, ErrSeedDataExists
	}

	projectIds, err := s.projectRepo.ListPublishedIdsByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	const seedDays = 7
	now := time.Now()
	today := util.GetMidnightIn(now, s.loc)

	events := make([]*model.EngagementEvent, 0)
	tally := make(map[string]int64)

	for d := seedDays - 1; d >= 0; d-- {
		day := today.AddDate(0, 0, -d)
		span := 24 * time.Hour
		if d == 0 {
			span = now.Sub(day)
			if span <= 0 {
				span = time.Second
			}
		}

		visits := 2 + rand.Intn(7)
		for i := 0; i < visits; i++ {
			events = append(events, &model.EngagementEvent{
				Kind:       model.KindPortfolioVisit,
				SubjectID:  ownerID,
				OwnerID:    ownerID,
				OccurredAt: day.Add(time.Duration(rand.Int63n(int64(span)))),
			})
			tally[dirtyMember(ownerID, model.KindPortfolioVisit, day)]++
		}

		for _, projectId := range projectIds {
			views := 1 + rand.Intn(5)
			for i := 0; i < views; i++ {
				events = append(events, &model.EngagementEvent{
					Kind:       model.KindProjectView,
					SubjectID:  projectId,
					OwnerID:    ownerID,
					OccurredAt: day.Add(time.Duration(rand.Int63n(int64(span)))),
				})
				tally[dirtyMember(projectId, model.KindProjectView, day)]++
			}
		}
	}

	if err := s.eventRepo.AppendBatch(ctx, events); err != nil {
		return nil, err
	}

	res := &dto.SeedResultDTO{Days: seedDays, ProjectsSeeded: len(projectIds)}
	for member, count := range tally {
		subjectId, kind, day, perr := ParseDirtyMember(member, s.loc)
		if perr != nil {
			continue
		}
		if err := s.aggRepo.SetDay(ctx, subjectId, kind, day, count); err != nil {
			return nil, err
		}
		if kind == model.KindPortfolioVisit {
			res.VisitsCreated += count
		} else {
			res.ViewsCreated += count
		}
	}

	s.invalidateCaches(ctx, model.KindProjectView, 0, ownerID)
	s.invalidateCaches(ctx, model.KindPortfolioVisit, ownerID, ownerID)

	return res, nil
}

// invalidateCaches 写入后清掉看板与总数缓存
func (s *AnalyticsServiceImpl) invalidateCaches(ctx context.Context, kind model.EngagementKind, subjectID, ownerID uint64) {
	_ = redis.DeleteByPrefix(ctx, consts.StatsCacheKey+strconv.FormatUint(ownerID, 10)+":")
	switch kind {
	case model.KindProjectView:
		if subjectID != 0 {
			_ = redis.DeleteKey(ctx, consts.ProjectTotalViewsKey+strconv.FormatUint(subjectID, 10))
		}
		_ = redis.DeleteKey(ctx, consts.OwnerProjectViewsKey+strconv.FormatUint(ownerID, 10))
	case model.KindPortfolioVisit:
		_ = redis.DeleteKey(ctx, consts.PortfolioTotalViewsKey+strconv.FormatUint(subjectID, 10))
	}
}

// periodStart 把周期名映射为起点,all 返回零值由序列逻辑特殊处理
func (s *AnalyticsServiceImpl) periodStart(period string, now time.Time) (time.Time, error) {
	today := util.GetMidnightIn(now, s.loc)
	switch period {
	case PeriodWeek:
		return today.AddDate(0, 0, -6), nil
	case PeriodMonth:
		return today.AddDate(0, -1, 0), nil
	case PeriodYear:
		return today.AddDate(-1, 0, 0), nil
	case PeriodAll:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s", ErrPeriodInvalid, period)
	}
}

func statsCacheKey(ownerID uint64, kind model.EngagementKind, period string, subjectFilter *uint64) string {
	key := consts.StatsCacheKey + strconv.FormatUint(ownerID, 10) + ":" +
		strconv.Itoa(int(kind)) + ":" + period
	if subjectFilter != nil {
		key += ":" + strconv.FormatUint(*subjectFilter, 10)
	}
	return key
}

func dirtyMember(subjectID uint64, kind model.EngagementKind, day time.Time) string {
	return strconv.Itoa(int(kind)) + ":" + strconv.FormatUint(subjectID, 10) + ":" + day.Format(time.DateOnly)
}

// ParseDirtyMember 解析脏桶标记 "kind:subject:date",日期按参考时区解释
func ParseDirtyMember(member string, loc *time.Location) (uint64, model.EngagementKind, time.Time, error) {
	var kindInt int
	var subjectID uint64
	var dateStr string
	if _, err := fmt.Sscanf(member, "%d:%d:%s", &kindInt, &subjectID, &dateStr); err != nil {
		return 0, 0, time.Time{}, err
	}
	day, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return 0, 0, time.Time{}, err
	}
	return subjectID, model.EngagementKind(kindInt), day, nil
}
