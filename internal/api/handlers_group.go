package api

import "ProjectShelf/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler      *handler.UserHandler
	ProjectHandler   *handler.ProjectHandler
	PortfolioHandler *handler.PortfolioHandler
	AnalyticsHandler *handler.AnalyticsHandler
	MediaHandler     *handler.MediaHandler
}
