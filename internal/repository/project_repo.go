package repository

import (
	"ProjectShelf/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProjectRepo interface {
	CreateProject(ctx context.Context, project *model.Project, media []*model.ProjectMedia) error
	UpdateProject(ctx context.Context, project *model.Project, media []*model.ProjectMedia, removedMediaIds []uint64) error
	GetProjectById(ctx context.Context, id uint64) (*model.Project, error)
	GetProjectByIdAndUser(ctx context.Context, id, userId uint64) (*model.Project, error)
	GetProjectBySlug(ctx context.Context, userId uint64, slug string) (*model.Project, error)
	ListProjectsByUser(ctx context.Context, userId uint64) ([]*model.Project, error)
	ListPublishedByUser(ctx context.Context, userId uint64) ([]*model.Project, error)
	ListPublishedIdsByUser(ctx context.Context, userId uint64) ([]uint64, error)
	UpdateSection(ctx context.Context, project *model.Project, field string) error
	SetPublished(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id uint64) error
	SlugExists(ctx context.Context, userId uint64, slug string) (bool, error)
	AddMedia(ctx context.Context, media *model.ProjectMedia) error
	UpdateMedia(ctx context.Context, media *model.ProjectMedia) error
	DeleteMedia(ctx context.Context, projectId, mediaId uint64) error
	GetMediaById(ctx context.Context, projectId, mediaId uint64) (*model.ProjectMedia, error)
}

type ProjectRepoImpl struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &ProjectRepoImpl{db: db}
}

// CreateProject 在同一事务中创建项目与媒体
func (s *ProjectRepoImpl) CreateProject(ctx context.Context, project *model.Project, media []*model.ProjectMedia) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		for _, m := range media {
			m.ProjectID = project.ID
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateProject 更新项目字段并对媒体列表做增删改对账
func (s *ProjectRepoImpl) UpdateProject(ctx context.Context, project *model.Project, media []*model.ProjectMedia, removedMediaIds []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Project{}).
			Where("id = ?", project.ID).
			Select("Title", "Description", "Slug", "Content", "Overview",
				"CoverImage", "Timeline", "Technologies", "Outcomes").
			Updates(project).Error; err != nil {
			return err
		}

		if len(removedMediaIds) > 0 {
			if err := tx.Where("project_id = ? AND id IN ?", project.ID, removedMediaIds).
				Delete(&model.ProjectMedia{}).Error; err != nil {
				return err
			}
		}

		for _, m := range media {
			m.ProjectID = project.ID
			if m.ID == 0 {
				if err := tx.Create(m).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&model.ProjectMedia{}).
					Where("id = ? AND project_id = ?", m.ID, project.ID).
					Select("MediaURL", "MediaType", "Caption", "SortOrder", "Width", "Height").
					Updates(m).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *ProjectRepoImpl) GetProjectById(ctx context.Context, id uint64) (*model.Project, error) {
	project := &model.Project{}
	result := s.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(project, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return project, nil
}

func (s *ProjectRepoImpl) GetProjectByIdAndUser(ctx context.Context, id, userId uint64) (*model.Project, error) {
	project := &model.Project{}
	result := s.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ? AND user_id = ?", id, userId).
		First(project)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return project, nil
}

func (s *ProjectRepoImpl) GetProjectBySlug(ctx context.Context, userId uint64, slug string) (*model.Project, error) {
	project := &model.Project{}
	result := s.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("user_id = ? AND slug = ?", userId, slug).
		First(project)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return project, nil
}

func (s *ProjectRepoImpl) ListProjectsByUser(ctx context.Context, userId uint64) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	err := s.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("user_id = ?", userId).
		Order("updated_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectRepoImpl) ListPublishedByUser(ctx context.Context, userId uint64) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	err := s.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("user_id = ? AND is_published = ?", userId, true).
		Order("published_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectRepoImpl) ListPublishedIdsByUser(ctx context.Context, userId uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("user_id = ? AND is_published = ?", userId, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateSection 只更新单个结构化字段,整体替换语义
func (s *ProjectRepoImpl) UpdateSection(ctx context.Context, project *model.Project, field string) error {
	return s.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", project.ID).
		Select(field).
		Updates(project).Error
}

func (s *ProjectRepoImpl) SetPublished(ctx context.Context, project *model.Project) error {
	return s.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", project.ID).
		Select("IsPublished", "PublishedAt").
		Updates(map[string]interface{}{
			"is_published": project.IsPublished,
			"published_at": project.PublishedAt,
		}).Error
}

func (s *ProjectRepoImpl) DeleteProject(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectMedia{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
}

func (s *ProjectRepoImpl) SlugExists(ctx context.Context, userId uint64, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("user_id = ? AND slug = ?", userId, slug).
		Count(&count).Error
	return count > 0, err
}

func (s *ProjectRepoImpl) AddMedia(ctx context.Context, media *model.ProjectMedia) error {
	return s.db.WithContext(ctx).Create(media).Error
}

func (s *ProjectRepoImpl) UpdateMedia(ctx context.Context, media *model.ProjectMedia) error {
	return s.db.WithContext(ctx).Model(&model.ProjectMedia{}).
		Where("id = ? AND project_id = ?", media.ID, media.ProjectID).
		Select("Caption", "SortOrder").
		Updates(media).Error
}

func (s *ProjectRepoImpl) DeleteMedia(ctx context.Context, projectId, mediaId uint64) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", mediaId, projectId).
		Delete(&model.ProjectMedia{}).Error
}

func (s *ProjectRepoImpl) GetMediaById(ctx context.Context, projectId, mediaId uint64) (*model.ProjectMedia, error) {
	media := &model.ProjectMedia{}
	result := s.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", mediaId, projectId).
		First(media)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return media, nil
}
