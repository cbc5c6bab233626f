package handler

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/minio"
	"ProjectShelf/internal/pkg/response"
	"ProjectShelf/internal/pkg/util"
	"ProjectShelf/internal/service"
	log "log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// Register 注册并直接签发令牌
func (h *UserHandler) Register(c *gin.Context) {
	regDTO := &dto.RegisterDTO{}
	if err := c.ShouldBindJSON(regDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(regDTO); err != nil {
		response.Error(c, err)
		return
	}

	auth, err := h.userSvc.Register(c.Request.Context(), regDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, auth)
}

func (h *UserHandler) Login(c *gin.Context) {
	credDTO := &dto.CredentialDTO{}
	if err := c.ShouldBindJSON(credDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(credDTO); err != nil {
		response.Error(c, err)
		return
	}

	auth, err := h.userSvc.Login(c.Request.Context(), credDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, auth)
}

func (h *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetUserInfo 当前登录用户资料
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")

	info, err := h.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// GetPublicProfile 按用户名取对外资料
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	profile, err := h.userSvc.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")

	updDTO := &dto.UpdateProfileDTO{}
	if err := c.ShouldBindJSON(updDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(updDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userSvc.UpdateProfile(c.Request.Context(), userID, updDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UploadAvatar 头像统一收缩成 JPEG 后入库
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetUint64("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	shrunk, err := util.ShrinkImage(reader, consts.AvatarMaxEdge)
	if err != nil {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := "avatars/" + time.Now().Format("2006/01/02/") + uuid.NewString() + ".jpg"
	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, shrunk, int64(shrunk.Len()), "image/jpeg")
	if err != nil {
		log.ErrorContext(c.Request.Context(), "avatar upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	url, err := h.userSvc.UpdateAvatar(c.Request.Context(), userID, fileKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"avatar_url": url})
}

// UpgradeToCreator 访客升级创作者
func (h *UserHandler) UpgradeToCreator(c *gin.Context) {
	userID := c.GetUint64("user_id")

	info, err := h.userSvc.UpgradeToCreator(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
