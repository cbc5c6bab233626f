package handler

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/pkg/response"
	"ProjectShelf/internal/pkg/util"
	"ProjectShelf/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
}

func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectSvc: projectSvc,
	}
}

// SaveDraft 创建或更新草稿,含媒体对账
func (h *ProjectHandler) SaveDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")

	draft := &dto.SaveDraftDTO{}
	if err := c.ShouldBindJSON(draft); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(draft); err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.projectSvc.SaveDraft(c.Request.Context(), userID, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	project, err := h.projectSvc.GetProject(c.Request.Context(), userID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) ListMyProjects(c *gin.Context) {
	userID := c.GetUint64("user_id")

	projects, err := h.projectSvc.ListMyProjects(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

func (h *ProjectHandler) Publish(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	project, err := h.projectSvc.Publish(c.Request.Context(), userID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Unpublish(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	project, err := h.projectSvc.Unpublish(c.Request.Context(), userID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.projectSvc.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *ProjectHandler) AddMedia(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	item := &dto.MediaItemDTO{}
	if err := c.ShouldBindJSON(item); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(item); err != nil {
		response.Error(c, err)
		return
	}

	saved, err := h.projectSvc.AddMedia(c.Request.Context(), userID, projectID, item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, saved)
}

func (h *ProjectHandler) UpdateMedia(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	mediaID, err := parseIDParam(c, "media_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	upd := &dto.UpdateMediaDTO{}
	if err := c.ShouldBindJSON(upd); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(upd); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projectSvc.UpdateMedia(c.Request.Context(), userID, projectID, mediaID, upd); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *ProjectHandler) DeleteMedia(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	mediaID, err := parseIDParam(c, "media_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.projectSvc.DeleteMedia(c.Request.Context(), userID, projectID, mediaID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UpdateTimeline 整体替换时间线
func (h *ProjectHandler) UpdateTimeline(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	upd := &dto.TimelineUpdateDTO{}
	if err := c.ShouldBindJSON(upd); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projectSvc.UpdateTimeline(c.Request.Context(), userID, projectID, upd.Timeline); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UpdateTechnologies 整体替换技术栈
func (h *ProjectHandler) UpdateTechnologies(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	upd := &dto.TechnologiesUpdateDTO{}
	if err := c.ShouldBindJSON(upd); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projectSvc.UpdateTechnologies(c.Request.Context(), userID, projectID, upd.Technologies); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UpdateOutcomes 整体替换成果
func (h *ProjectHandler) UpdateOutcomes(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	upd := &dto.OutcomesUpdateDTO{}
	if err := c.ShouldBindJSON(upd); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.projectSvc.UpdateOutcomes(c.Request.Context(), userID, projectID, upd.Outcomes); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
