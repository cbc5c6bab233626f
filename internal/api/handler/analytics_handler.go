package handler

import (
	"ProjectShelf/internal/pkg/response"
	"ProjectShelf/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
	}
}

// GetProjectViewStats 项目浏览看板,可选 project_id 过滤单个项目
func (h *AnalyticsHandler) GetProjectViewStats(c *gin.Context) {
	userID := c.GetUint64("user_id")
	period := c.DefaultQuery("period", service.PeriodWeek)

	var projectFilter *uint64
	if raw := c.Query("project_id"); raw != "" {
		projectID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		projectFilter = &projectID
	}

	stats, err := h.analyticsSvc.GetProjectViewStats(c.Request.Context(), userID, period, projectFilter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// GetPortfolioVisitStats 作品集访问看板
func (h *AnalyticsHandler) GetPortfolioVisitStats(c *gin.Context) {
	userID := c.GetUint64("user_id")
	period := c.DefaultQuery("period", service.PeriodWeek)

	stats, err := h.analyticsSvc.GetPortfolioVisitStats(c.Request.Context(), userID, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// GetProjectTotals 项目累计浏览数
func (h *AnalyticsHandler) GetProjectTotals(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	totals, err := h.analyticsSvc.GetProjectTotals(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, totals)
}

// GetOwnerProjectTotals 名下全部项目的累计浏览数
func (h *AnalyticsHandler) GetOwnerProjectTotals(c *gin.Context) {
	userID := c.GetUint64("user_id")

	totals, err := h.analyticsSvc.GetOwnerProjectTotals(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, totals)
}

// GetPortfolioTotals 自己作品集的累计访问数
func (h *AnalyticsHandler) GetPortfolioTotals(c *gin.Context) {
	userID := c.GetUint64("user_id")

	totals, err := h.analyticsSvc.GetPortfolioTotals(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, totals)
}

// RecordProjectView 前端埋点直接上报一次项目浏览
func (h *AnalyticsHandler) RecordProjectView(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := h.analyticsSvc.RecordProjectView(c.Request.Context(), projectID, viewerPtr(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RecordPortfolioVisit 前端埋点直接上报一次作品集访问
func (h *AnalyticsHandler) RecordPortfolioVisit(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := h.analyticsSvc.RecordPortfolioVisit(c.Request.Context(), userID, viewerPtr(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SeedSampleData 给空看板生成近 7 天示例数据
func (h *AnalyticsHandler) SeedSampleData(c *gin.Context) {
	userID := c.GetUint64("user_id")

	result, err := h.analyticsSvc.SeedSampleData(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
