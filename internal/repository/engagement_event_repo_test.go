package repository

import (
	"ProjectShelf/internal/model"
	"context"
	"testing"
	"time"
)

func uintPtr(v uint64) *uint64 {
	return &v
}

func TestQueryBySubjectRangeAndOrder(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()
	repo := NewEngagementEventRepo(gdb)
	ctx := context.Background()

	from := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	events := []*model.EngagementEvent{
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, OccurredAt: from.Add(5 * time.Hour)},
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, OccurredAt: from.Add(time.Hour)},
		// 恰好落在右边界,不应被包含
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, OccurredAt: to},
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, OccurredAt: from.Add(-time.Second)},
		{Kind: model.KindPortfolioVisit, SubjectID: 1, OwnerID: 10, OccurredAt: from.Add(2 * time.Hour)},
		{Kind: model.KindProjectView, SubjectID: 2, OwnerID: 10, OccurredAt: from.Add(3 * time.Hour)},
	}
	if err := repo.AppendBatch(ctx, events); err != nil {
		t.Fatalf("append batch failed: %v", err)
	}

	got, err := repo.QueryBySubject(ctx, 1, model.KindProjectView, from, to)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events in [from, to), got %d", len(got))
	}
	if !got[0].OccurredAt.Before(got[1].OccurredAt) {
		t.Fatalf("events must be ordered by occurred_at asc")
	}
}

func TestQueryByOwnerSpansSubjects(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()
	repo := NewEngagementEventRepo(gdb)
	ctx := context.Background()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	_ = repo.AppendBatch(ctx, []*model.EngagementEvent{
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, OccurredAt: now},
		{Kind: model.KindProjectView, SubjectID: 2, OwnerID: 10, OccurredAt: now.Add(time.Minute)},
		{Kind: model.KindProjectView, SubjectID: 3, OwnerID: 20, OccurredAt: now},
	})

	got, err := repo.QueryByOwner(ctx, 10, model.KindProjectView, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected events across owner's subjects only, got %d", len(got))
	}
}

func TestCountDistinctViewersSkipsAnonymous(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()
	repo := NewEngagementEventRepo(gdb)
	ctx := context.Background()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	_ = repo.AppendBatch(ctx, []*model.EngagementEvent{
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, ViewerID: uintPtr(100), OccurredAt: now},
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, ViewerID: uintPtr(100), OccurredAt: now.Add(time.Minute)},
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, ViewerID: uintPtr(200), OccurredAt: now},
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, ViewerID: nil, OccurredAt: now},
		{Kind: model.KindProjectView, SubjectID: 1, OwnerID: 10, ViewerID: nil, OccurredAt: now},
	})

	from, to := now.Add(-time.Hour), now.Add(time.Hour)

	bySubject, err := repo.CountDistinctViewersBySubject(ctx, 1, model.KindProjectView, from, to)
	if err != nil {
		t.Fatalf("count by subject failed: %v", err)
	}
	if bySubject != 2 {
		t.Fatalf("anonymous events must not count as viewers, got %d", bySubject)
	}

	byOwner, err := repo.CountDistinctViewersByOwner(ctx, 10, model.KindProjectView, from, to)
	if err != nil {
		t.Fatalf("count by owner failed: %v", err)
	}
	if byOwner != 2 {
		t.Fatalf("expected 2 distinct viewers for owner, got %d", byOwner)
	}
}

func TestBreakdownByOwnerOrdering(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()
	repo := NewEngagementEventRepo(gdb)
	ctx := context.Background()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	events := make([]*model.EngagementEvent, 0)
	appendN := func(subjectId uint64, n int) {
		for i := 0; i < n; i++ {
			events = append(events, &model.EngagementEvent{
				Kind: model.KindProjectView, SubjectID: subjectId, OwnerID: 10, OccurredAt: now,
			})
		}
	}
	appendN(3, 2)
	appendN(1, 5)
	appendN(2, 2)
	if err := repo.AppendBatch(ctx, events); err != nil {
		t.Fatalf("append batch failed: %v", err)
	}

	rows, err := repo.BreakdownByOwner(ctx, 10, model.KindProjectView, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("breakdown failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(rows))
	}
	if rows[0].SubjectID != 1 || rows[0].Count != 5 {
		t.Fatalf("highest count must come first, got subject %d count %d", rows[0].SubjectID, rows[0].Count)
	}
	// 并列按主体 ID 升序
	if rows[1].SubjectID != 2 || rows[2].SubjectID != 3 {
		t.Fatalf("ties must break by subject id asc, got %d then %d", rows[1].SubjectID, rows[2].SubjectID)
	}
}

func TestHasAnyForOwner(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()
	repo := NewEngagementEventRepo(gdb)
	ctx := context.Background()

	has, err := repo.HasAnyForOwner(ctx, 10)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if has {
		t.Fatalf("empty store must report no events")
	}

	_ = repo.Append(ctx, &model.EngagementEvent{
		Kind: model.KindPortfolioVisit, SubjectID: 10, OwnerID: 10, OccurredAt: time.Now(),
	})

	has, err = repo.HasAnyForOwner(ctx, 10)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !has {
		t.Fatalf("owner with events must report true")
	}
}
