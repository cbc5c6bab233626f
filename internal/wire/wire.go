package wire

import (
	"ProjectShelf/internal/api"
	"ProjectShelf/internal/api/config"
	"ProjectShelf/internal/api/handler"
	"ProjectShelf/internal/job"
	"ProjectShelf/internal/pkg/cron"
	"ProjectShelf/internal/repository"
	"ProjectShelf/internal/service"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	loc, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		return nil, fmt.Errorf("无效的统计时区 %q: %w", cfg.Analytics.Timezone, err)
	}

	userRepo := repository.NewUserRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	eventRepo := repository.NewEngagementEventRepo(db)
	aggRepo := repository.NewDailyAggregateRepo(db)

	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo)
	portfolioService := service.NewPortfolioService(userRepo, projectRepo)
	analyticsService := service.NewAnalyticsService(
		eventRepo, aggRepo, projectRepo, userRepo,
		loc, time.Duration(cfg.Analytics.TotalsCacheTTL)*time.Second,
		cfg.Analytics.StatsCacheDaily)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService),
		ProjectHandler:   handler.NewProjectHandler(projectService),
		PortfolioHandler: handler.NewPortfolioHandler(portfolioService, analyticsService),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService),
		MediaHandler:     handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	reconcileJob := job.NewAggregateReconcileJob(analyticsService, loc)
	cronMgr := cron.NewCronManager(reconcileJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
