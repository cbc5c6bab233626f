package service

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/model"
	"ProjectShelf/internal/repository"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newProjectFixture(t *testing.T) (ProjectService, *gorm.DB, func()) {
	t.Helper()
	gdb, cleanup := setupAnalyticsTestDB(t)
	return NewProjectService(repository.NewProjectRepo(gdb)), gdb, cleanup
}

func createProjectOwner(t *testing.T, gdb *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    username + "@example.com",
		Username: username,
		Name:     username,
		Password: "hash",
		Role:     "CREATOR",
	}
	if err := repository.NewUserRepo(gdb).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestSaveDraftCreatesWithGeneratedSlug(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")

	saved, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{
		Title:       "My First Project",
		Description: "a thing",
		Content:     "long form content",
		Media: []*dto.MediaItemDTO{
			{MediaURL: "https://cdn.example.com/a.jpg", MediaType: "IMAGE", SortOrder: 1},
		},
	})
	if err != nil {
		t.Fatalf("save draft failed: %v", err)
	}
	if saved.Slug != "my-first-project" {
		t.Fatalf("expected slug from title, got %q", saved.Slug)
	}
	if saved.IsPublished {
		t.Fatalf("drafts must start unpublished")
	}
	if len(saved.Media) != 1 {
		t.Fatalf("expected 1 media item, got %d", len(saved.Media))
	}
}

func TestSaveDraftSlugConflictGetsSuffix(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")
	other := createProjectOwner(t, gdb, "bob")

	first, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{Title: "Demo"})
	if err != nil {
		t.Fatalf("first draft failed: %v", err)
	}

	second, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{Title: "Demo"})
	if err != nil {
		t.Fatalf("second draft failed: %v", err)
	}
	if second.Slug == first.Slug {
		t.Fatalf("same-owner title clash must get a suffixed slug")
	}

	// 显式占用的 slug 直接报冲突
	_, err = svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{Title: "Another", Slug: strPtr("demo")})
	if !errors.Is(err, ErrSlugExist) {
		t.Fatalf("explicit taken slug must fail, got %v", err)
	}

	// slug 只在单个创作者内唯一
	theirs, err := svc.SaveDraft(ctx, other.ID, &dto.SaveDraftDTO{Title: "Demo"})
	if err != nil {
		t.Fatalf("other user's draft failed: %v", err)
	}
	if theirs.Slug != "demo" {
		t.Fatalf("slugs are scoped per user, got %q", theirs.Slug)
	}
}

func TestSaveDraftUpdateReconcilesMedia(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")

	saved, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{
		Title: "Gallery",
		Media: []*dto.MediaItemDTO{
			{MediaURL: "https://cdn.example.com/a.jpg", MediaType: "IMAGE", SortOrder: 1},
			{MediaURL: "https://cdn.example.com/b.jpg", MediaType: "IMAGE", SortOrder: 2},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	keep := saved.Media[0]
	drop := saved.Media[1]

	updated, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{
		ID:          &saved.ID,
		Title:       "Gallery v2",
		Description: "now with video",
		Media: []*dto.MediaItemDTO{
			{ID: keep.ID, MediaURL: keep.MediaURL, MediaType: "IMAGE", SortOrder: 2},
			{MediaURL: "https://cdn.example.com/c.mp4", MediaType: "VIDEO", SortOrder: 1},
		},
		RemovedMedia: []uint64{drop.ID},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Gallery v2" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Slug != saved.Slug {
		t.Fatalf("slug must survive updates unless changed explicitly")
	}
	if len(updated.Media) != 2 {
		t.Fatalf("expected 2 media items after reconcile, got %d", len(updated.Media))
	}
	for _, m := range updated.Media {
		if m.ID == drop.ID {
			t.Fatalf("removed media must be gone")
		}
	}
	// Preload 按 sort_order 升序
	if updated.Media[0].MediaType != "VIDEO" {
		t.Fatalf("media must come back ordered by sort_order, got %+v", updated.Media[0])
	}
}

func TestSaveDraftRejectsForeignProject(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")
	intruder := createProjectOwner(t, gdb, "mallory")

	saved, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{Title: "Private"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.SaveDraft(ctx, intruder.ID, &dto.SaveDraftDTO{ID: &saved.ID, Title: "Hijacked"})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("foreign project must be invisible, got %v", err)
	}
}

func TestPublishLifecycle(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")

	saved, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{Title: "Launch"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published, err := svc.Publish(ctx, owner.ID, saved.ID)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !published.IsPublished || published.PublishedAt == nil {
		t.Fatalf("publish must set flag and timestamp: %+v", published)
	}

	unpublished, err := svc.Unpublish(ctx, owner.ID, saved.ID)
	if err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	if unpublished.IsPublished || unpublished.PublishedAt != nil {
		t.Fatalf("unpublish must clear flag and timestamp: %+v", unpublished)
	}
}

func TestUpdateSectionsReplaceWholesale(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")

	saved, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{
		Title:        "Sectioned",
		Technologies: []string{"go", "redis"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = svc.UpdateTimeline(ctx, owner.ID, saved.ID, []model.TimelineEntry{
		{Date: "2026-01", Title: "Kickoff", Description: "started"},
	})
	if err != nil {
		t.Fatalf("update timeline failed: %v", err)
	}
	if err = svc.UpdateTechnologies(ctx, owner.ID, saved.ID, []string{"go"}); err != nil {
		t.Fatalf("update technologies failed: %v", err)
	}
	err = svc.UpdateOutcomes(ctx, owner.ID, saved.ID, []model.OutcomeEntry{
		{Metric: "users", Value: "1000", Description: "first month"},
	})
	if err != nil {
		t.Fatalf("update outcomes failed: %v", err)
	}

	got, err := svc.GetProject(ctx, owner.ID, saved.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Timeline) != 1 || got.Timeline[0].Title != "Kickoff" {
		t.Fatalf("timeline mismatch: %+v", got.Timeline)
	}
	if len(got.Technologies) != 1 || got.Technologies[0] != "go" {
		t.Fatalf("technologies must be replaced wholesale: %+v", got.Technologies)
	}
	if len(got.Outcomes) != 1 || got.Outcomes[0].Metric != "users" {
		t.Fatalf("outcomes mismatch: %+v", got.Outcomes)
	}

	if err = svc.UpdateTechnologies(ctx, owner.ID, 9999, []string{"go"}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("missing project must 404, got %v", err)
	}
}

func TestDeleteProjectRemovesMedia(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")

	saved, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{
		Title: "Doomed",
		Media: []*dto.MediaItemDTO{{MediaURL: "https://cdn.example.com/x.jpg", MediaType: "IMAGE"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err = svc.DeleteProject(ctx, owner.ID, saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err = svc.GetProject(ctx, owner.ID, saved.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("deleted project must be gone, got %v", err)
	}

	var mediaCount int64
	gdb.Model(&model.ProjectMedia{}).Where("project_id = ?", saved.ID).Count(&mediaCount)
	if mediaCount != 0 {
		t.Fatalf("media rows must be deleted with the project, got %d", mediaCount)
	}
}

func TestMediaCRUD(t *testing.T) {
	svc, gdb, cleanup := newProjectFixture(t)
	defer cleanup()
	ctx := context.Background()
	owner := createProjectOwner(t, gdb, "alice")

	saved, err := svc.SaveDraft(ctx, owner.ID, &dto.SaveDraftDTO{Title: "Album"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	added, err := svc.AddMedia(ctx, owner.ID, saved.ID, &dto.MediaItemDTO{
		MediaURL: "https://cdn.example.com/a.jpg", MediaType: "IMAGE", SortOrder: 1,
	})
	if err != nil {
		t.Fatalf("add media failed: %v", err)
	}
	if added.ID == 0 {
		t.Fatalf("added media must get an id")
	}

	newOrder := 5
	if err = svc.UpdateMedia(ctx, owner.ID, saved.ID, added.ID, &dto.UpdateMediaDTO{
		Caption: strPtr("hero shot"), SortOrder: &newOrder,
	}); err != nil {
		t.Fatalf("update media failed: %v", err)
	}

	got, err := svc.GetProject(ctx, owner.ID, saved.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Media) != 1 || got.Media[0].Caption == nil || *got.Media[0].Caption != "hero shot" || got.Media[0].SortOrder != 5 {
		t.Fatalf("media not updated: %+v", got.Media)
	}

	if err = svc.DeleteMedia(ctx, owner.ID, saved.ID, added.ID); err != nil {
		t.Fatalf("delete media failed: %v", err)
	}
	if err = svc.DeleteMedia(ctx, owner.ID, saved.ID, added.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("double delete must 404, got %v", err)
	}
}
