package service

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/repository"
	"context"
)

type PortfolioService interface {
	// GetPortfolio 对外作品集主页:资料 + 已发布项目
	GetPortfolio(ctx context.Context, username string) (*dto.PortfolioDTO, error)
	// GetPublishedProject 按 slug 取对外项目详情;未发布的仅项目主人可见(草稿预览),
	// 其他访问者视为不存在
	GetPublishedProject(ctx context.Context, username, slug string, viewerID *uint64) (*dto.ProjectDTO, error)
	// ListCreators 分页发现页:拥有已发布项目的用户
	ListCreators(ctx context.Context, page, size int) (*dto.PageDTO, error)
}

type PortfolioServiceImpl struct {
	userRepo    repository.UserRepo
	projectRepo repository.ProjectRepo
}

func NewPortfolioService(userRepo repository.UserRepo, projectRepo repository.ProjectRepo) PortfolioService {
	return &PortfolioServiceImpl{
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

func (s *PortfolioServiceImpl) GetPortfolio(ctx context.Context, username string) (*dto.PortfolioDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	projects, err := s.projectRepo.ListPublishedByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.ProjectSummaryDTO, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, toProjectSummaryDTO(p))
	}

	return &dto.PortfolioDTO{
		User:     toUserDTO(user, false),
		Projects: summaries,
	}, nil
}

func (s *PortfolioServiceImpl) GetPublishedProject(ctx context.Context, username, slug string, viewerID *uint64) (*dto.ProjectDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	project, err := s.projectRepo.GetProjectBySlug(ctx, user.ID, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if !project.IsPublished && (viewerID == nil || *viewerID != user.ID) {
		return nil, ErrProjectNotFound
	}

	return toProjectDTO(project), nil
}

func (s *PortfolioServiceImpl) ListCreators(ctx context.Context, page, size int) (*dto.PageDTO, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 50 {
		size = 20
	}

	users, total, err := s.userRepo.ListUsersWithPublishedProjects(ctx, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		list = append(list, toUserDTO(u, false))
	}

	return &dto.PageDTO{
		Total: total,
		Page:  page,
		Size:  size,
		List:  list,
	}, nil
}
