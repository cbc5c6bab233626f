package handler

import (
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/response"
	"ProjectShelf/internal/pkg/util"
	"ProjectShelf/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioSvc service.PortfolioService
	analyticsSvc service.AnalyticsService
}

func NewPortfolioHandler(portfolioSvc service.PortfolioService, analyticsSvc service.AnalyticsService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioSvc: portfolioSvc,
		analyticsSvc: analyticsSvc,
	}
}

// GetPortfolio 对外作品集主页,顺带记一次访问,埋点失败不影响页面
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	username := c.Param("username")

	portfolio, err := h.portfolioSvc.GetPortfolio(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}

	_, _ = h.analyticsSvc.RecordPortfolioVisit(c.Request.Context(), portfolio.User.UserID, viewerPtr(c))

	// 分享链接以请求来源为基准,跟随前端部署域名
	if baseURL, ok := c.Request.Context().Value(consts.BaseURL).(string); ok && baseURL != "" {
		portfolio.ShareURL = baseURL + "/" + username
	}

	response.Success(c, portfolio)
}

// GetProject 对外项目详情,顺带记一次浏览
func (h *PortfolioHandler) GetProject(c *gin.Context) {
	username := c.Param("username")
	slug := c.Param("slug")

	viewer := viewerPtr(c)
	project, err := h.portfolioSvc.GetPublishedProject(c.Request.Context(), username, slug, viewer)
	if err != nil {
		response.Error(c, err)
		return
	}

	if project.IsPublished {
		_, _ = h.analyticsSvc.RecordProjectView(c.Request.Context(), project.ID, viewer)
	}

	response.Success(c, project)
}

// ListCreators 发现页
func (h *PortfolioHandler) ListCreators(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	creators, err := h.portfolioSvc.ListCreators(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, creators)
}

// viewerPtr 取可选鉴权注入的访问者,未登录返回 nil 表示匿名
func viewerPtr(c *gin.Context) *uint64 {
	viewerID := c.GetUint64("user_id")
	if viewerID == 0 {
		return nil
	}
	return util.PtrUint64(viewerID)
}
