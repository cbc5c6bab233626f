package api

import (
	"ProjectShelf/internal/api/middleware"
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.CommonMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.GET("/profile/:username", group.UserHandler.GetPublicProfile)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/me", group.UserHandler.GetUserInfo)
				authGroup.PUT("/profile", group.UserHandler.UpdateProfile)
				authGroup.POST("/avatar", group.UserHandler.UploadAvatar)
				authGroup.POST("/upgrade-to-creator", group.UserHandler.UpgradeToCreator)
			}
		}

		// 创作者项目工作台
		projectGroup := apiGroup.Group("/projects")
		projectGroup.Use(middleware.AuthMiddleware(), middleware.CheckRole(consts.RoleCreator))
		{
			projectGroup.POST("/draft", group.ProjectHandler.SaveDraft)
			projectGroup.GET("", group.ProjectHandler.ListMyProjects)
			projectGroup.GET("/:project_id", group.ProjectHandler.GetProject)
			projectGroup.POST("/:project_id/publish", group.ProjectHandler.Publish)
			projectGroup.POST("/:project_id/unpublish", group.ProjectHandler.Unpublish)
			projectGroup.DELETE("/:project_id", group.ProjectHandler.DeleteProject)

			projectGroup.POST("/:project_id/media", group.ProjectHandler.AddMedia)
			projectGroup.PUT("/:project_id/media/:media_id", group.ProjectHandler.UpdateMedia)
			projectGroup.DELETE("/:project_id/media/:media_id", group.ProjectHandler.DeleteMedia)

			projectGroup.PUT("/:project_id/timeline", group.ProjectHandler.UpdateTimeline)
			projectGroup.PUT("/:project_id/technologies", group.ProjectHandler.UpdateTechnologies)
			projectGroup.PUT("/:project_id/outcomes", group.ProjectHandler.UpdateOutcomes)
		}

		// 对外作品集,匿名可看,登录则访问记录带上访问者
		portfolioGroup := apiGroup.Group("/portfolio")
		portfolioGroup.Use(middleware.AuthOptionalMiddleware())
		{
			portfolioGroup.GET("/creators", group.PortfolioHandler.ListCreators)
			portfolioGroup.GET("/:username", group.PortfolioHandler.GetPortfolio)
			portfolioGroup.GET("/:username/projects/:slug", group.PortfolioHandler.GetProject)
		}

		analyticsGroup := apiGroup.Group("/analytics")
		{
			// 前端埋点上报
			recordGroup := analyticsGroup.Group("/record")
			recordGroup.Use(middleware.AuthOptionalMiddleware())
			{
				recordGroup.POST("/project/:project_id", group.AnalyticsHandler.RecordProjectView)
				recordGroup.POST("/portfolio/:user_id", group.AnalyticsHandler.RecordPortfolioVisit)
			}

			// 统计看板仅创作者本人可见
			statsGroup := analyticsGroup.Group("")
			statsGroup.Use(middleware.AuthMiddleware(), middleware.CheckRole(consts.RoleCreator))
			{
				statsGroup.GET("/projects", group.AnalyticsHandler.GetProjectViewStats)
				statsGroup.GET("/portfolio", group.AnalyticsHandler.GetPortfolioVisitStats)
				statsGroup.GET("/projects/total", group.AnalyticsHandler.GetOwnerProjectTotals)
				statsGroup.GET("/projects/:project_id/total", group.AnalyticsHandler.GetProjectTotals)
				statsGroup.GET("/portfolio/total", group.AnalyticsHandler.GetPortfolioTotals)
				statsGroup.POST("/seed", group.AnalyticsHandler.SeedSampleData)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware(), middleware.CheckRole(consts.RoleCreator))
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
