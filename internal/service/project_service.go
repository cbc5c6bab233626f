package service

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/model"
	"ProjectShelf/internal/pkg/minio"
	"ProjectShelf/internal/pkg/util"
	"ProjectShelf/internal/repository"
	"context"
	"time"
)

type ProjectService interface {
	// SaveDraft 创建或更新草稿,slug 缺省时由标题生成
	SaveDraft(ctx context.Context, userID uint64, dto *dto.SaveDraftDTO) (*dto.ProjectDTO, error)
	GetProject(ctx context.Context, userID, projectID uint64) (*dto.ProjectDTO, error)
	ListMyProjects(ctx context.Context, userID uint64) ([]*dto.ProjectSummaryDTO, error)
	Publish(ctx context.Context, userID, projectID uint64) (*dto.ProjectDTO, error)
	Unpublish(ctx context.Context, userID, projectID uint64) (*dto.ProjectDTO, error)
	DeleteProject(ctx context.Context, userID, projectID uint64) error
	AddMedia(ctx context.Context, userID, projectID uint64, item *dto.MediaItemDTO) (*dto.MediaItemDTO, error)
	UpdateMedia(ctx context.Context, userID, projectID, mediaID uint64, upd *dto.UpdateMediaDTO) error
	DeleteMedia(ctx context.Context, userID, projectID, mediaID uint64) error
	UpdateTimeline(ctx context.Context, userID, projectID uint64, timeline []model.TimelineEntry) error
	UpdateTechnologies(ctx context.Context, userID, projectID uint64, technologies []string) error
	UpdateOutcomes(ctx context.Context, userID, projectID uint64, outcomes []model.OutcomeEntry) error
}

type ProjectServiceImpl struct {
	projectRepo repository.ProjectRepo
}

func NewProjectService(projectRepo repository.ProjectRepo) ProjectService {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
	}
}

func (s *ProjectServiceImpl) SaveDraft(ctx context.Context, userID uint64, draft *dto.SaveDraftDTO) (*dto.ProjectDTO, error) {
	project := &model.Project{
		UserID:       userID,
		Title:        draft.Title,
		Description:  draft.Description,
		Content:      draft.Content,
		Overview:     draft.Overview,
		CoverImage:   draft.CoverImage,
		Timeline:     draft.Timeline,
		Technologies: draft.Technologies,
		Outcomes:     draft.Outcomes,
	}

	media := make([]*model.ProjectMedia, 0, len(draft.Media))
	for _, m := range draft.Media {
		media = append(media, &model.ProjectMedia{
			ID:        m.ID,
			MediaURL:  m.MediaURL,
			MediaType: m.MediaType,
			Caption:   m.Caption,
			SortOrder: m.SortOrder,
			Width:     m.Width,
			Height:    m.Height,
		})
	}

	if draft.ID == nil {
		slug, err := s.resolveSlug(ctx, userID, draft.Slug, draft.Title)
		if err != nil {
			return nil, err
		}
		project.Slug = slug
		if err := s.projectRepo.CreateProject(ctx, project, media); err != nil {
			if repository.IsDuplicateKeyError(err) {
				return nil, ErrSlugExist
			}
			return nil, err
		}
	} else {
		existing, err := s.projectRepo.GetProjectByIdAndUser(ctx, *draft.ID, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrProjectNotFound
		}

		project.ID = existing.ID
		project.Slug = existing.Slug
		if draft.Slug != nil && *draft.Slug != existing.Slug {
			taken, err := s.projectRepo.SlugExists(ctx, userID, *draft.Slug)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrSlugExist
			}
			project.Slug = *draft.Slug
		}

		if err := s.projectRepo.UpdateProject(ctx, project, media, draft.RemovedMedia); err != nil {
			return nil, err
		}
	}

	saved, err := s.projectRepo.GetProjectById(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return toProjectDTO(saved), nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, userID, projectID uint64) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetProjectByIdAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return toProjectDTO(project), nil
}

func (s *ProjectServiceImpl) ListMyProjects(ctx context.Context, userID uint64) ([]*dto.ProjectSummaryDTO, error) {
	projects, err := s.projectRepo.ListProjectsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ProjectSummaryDTO, 0, len(projects))
	for _, p := range projects {
		res = append(res, toProjectSummaryDTO(p))
	}
	return res, nil
}

func (s *ProjectServiceImpl) Publish(ctx context.Context, userID, projectID uint64) (*dto.ProjectDTO, error) {
	return s.setPublished(ctx, userID, projectID, true)
}

func (s *ProjectServiceImpl) Unpublish(ctx context.Context, userID, projectID uint64) (*dto.ProjectDTO, error) {
	return s.setPublished(ctx, userID, projectID, false)
}

func (s *ProjectServiceImpl) setPublished(ctx context.Context, userID, projectID uint64, published bool) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetProjectByIdAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	project.IsPublished = published
	if published {
		now := time.Now()
		project.PublishedAt = &now
	} else {
		project.PublishedAt = nil
	}

	if err = s.projectRepo.SetPublished(ctx, project); err != nil {
		return nil, err
	}
	return toProjectDTO(project), nil
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, userID, projectID uint64) error {
	project, err := s.projectRepo.GetProjectByIdAndUser(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return s.projectRepo.DeleteProject(ctx, projectID)
}

func (s *ProjectServiceImpl) AddMedia(ctx context.Context, userID, projectID uint64, item *dto.MediaItemDTO) (*dto.MediaItemDTO, error) {
	project, err := s.projectRepo.GetProjectByIdAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	media := &model.ProjectMedia{
		ProjectID: projectID,
		MediaURL:  item.MediaURL,
		MediaType: item.MediaType,
		Caption:   item.Caption,
		SortOrder: item.SortOrder,
		Width:     item.Width,
		Height:    item.Height,
	}
	if err = s.projectRepo.AddMedia(ctx, media); err != nil {
		return nil, err
	}

	item.ID = media.ID
	return item, nil
}

func (s *ProjectServiceImpl) UpdateMedia(ctx context.Context, userID, projectID, mediaID uint64, upd *dto.UpdateMediaDTO) error {
	project, err := s.projectRepo.GetProjectByIdAndUser(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	media, err := s.projectRepo.GetMediaById(ctx, projectID, mediaID)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrMediaNotFound
	}

	if upd.Caption != nil {
		media.Caption = upd.Caption
	}
	if upd.SortOrder != nil {
		media.SortOrder = *upd.SortOrder
	}
	return s.projectRepo.UpdateMedia(ctx, media)
}

func (s *ProjectServiceImpl) DeleteMedia(ctx context.Context, userID, projectID, mediaID uint64) error {
	project, err := s.projectRepo.GetProjectByIdAndUser(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	media, err := s.projectRepo.GetMediaById(ctx, projectID, mediaID)
	if err != nil {
		return err
	}
	if media == nil {
		return ErrMediaNotFound
	}
	if err = s.projectRepo.DeleteMedia(ctx, projectID, mediaID); err != nil {
		return err
	}

	// 尽力清理对象存储,失败不影响删除结果
	if objectName := minio.ObjectNameFromURL(media.MediaURL); objectName != "" {
		_ = minio.DeleteFile(ctx, objectName)
	}
	return nil
}

func (s *ProjectServiceImpl) UpdateTimeline(ctx context.Context, userID, projectID uint64, timeline []model.TimelineEntry) error {
	return s.updateSection(ctx, userID, projectID, func(p *model.Project) {
		p.Timeline = timeline
	}, "Timeline")
}

func (s *ProjectServiceImpl) UpdateTechnologies(ctx context.Context, userID, projectID uint64, technologies []string) error {
	return s.updateSection(ctx, userID, projectID, func(p *model.Project) {
		p.Technologies = technologies
	}, "Technologies")
}

func (s *ProjectServiceImpl) UpdateOutcomes(ctx context.Context, userID, projectID uint64, outcomes []model.OutcomeEntry) error {
	return s.updateSection(ctx, userID, projectID, func(p *model.Project) {
		p.Outcomes = outcomes
	}, "Outcomes")
}

func (s *ProjectServiceImpl) updateSection(ctx context.Context, userID, projectID uint64, apply func(*model.Project), field string) error {
	project, err := s.projectRepo.GetProjectByIdAndUser(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	apply(project)
	return s.projectRepo.UpdateSection(ctx, project, field)
}

// resolveSlug 显式 slug 优先,否则由标题生成,冲突时追加随机后缀
func (s *ProjectServiceImpl) resolveSlug(ctx context.Context, userID uint64, explicit *string, title string) (string, error) {
	if explicit != nil && *explicit != "" {
		taken, err := s.projectRepo.SlugExists(ctx, userID, *explicit)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrSlugExist
		}
		return *explicit, nil
	}

	slug := util.Slugify(title)
	for i := 0; i < 5; i++ {
		taken, err := s.projectRepo.SlugExists(ctx, userID, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = util.SlugWithSuffix(util.Slugify(title))
	}
	return "", ErrSlugExist
}

func toProjectDTO(p *model.Project) *dto.ProjectDTO {
	media := make([]*dto.MediaItemDTO, 0, len(p.Media))
	for _, m := range p.Media {
		media = append(media, &dto.MediaItemDTO{
			ID:        m.ID,
			MediaURL:  m.MediaURL,
			MediaType: m.MediaType,
			Caption:   m.Caption,
			SortOrder: m.SortOrder,
			Width:     m.Width,
			Height:    m.Height,
		})
	}
	return &dto.ProjectDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		Title:        p.Title,
		Description:  p.Description,
		Slug:         p.Slug,
		Content:      p.Content,
		Overview:     p.Overview,
		CoverImage:   p.CoverImage,
		Timeline:     p.Timeline,
		Technologies: p.Technologies,
		Outcomes:     p.Outcomes,
		IsPublished:  p.IsPublished,
		PublishedAt:  p.PublishedAt,
		Media:        media,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProjectSummaryDTO(p *model.Project) *dto.ProjectSummaryDTO {
	return &dto.ProjectSummaryDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Slug:        p.Slug,
		CoverImage:  p.CoverImage,
		IsPublished: p.IsPublished,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
