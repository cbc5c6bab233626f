package handler

import (
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/minio"
	"ProjectShelf/internal/pkg/response"
	"ProjectShelf/internal/pkg/util"
	"ProjectShelf/internal/service"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 上传项目媒体,类型按文件头嗅探,图片顺带取宽高
func (s *MediaHandler) Upload(c *gin.Context) {
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
	if err != nil {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	isImage := strings.HasPrefix(contentType, consts.MimePrefixImage)
	isVideo := strings.HasPrefix(contentType, consts.MimePrefixVideo)
	if !isImage && !isVideo {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	mediaType := consts.MediaTypeImage
	if isVideo {
		mediaType = consts.MediaTypeVideo
	}

	var width, height int
	if isImage {
		w, h, err := util.GetImageDimensions(reader)
		if err != nil {
			log.WarnContext(c.Request.Context(), "failed to read image dimensions", "err", err)
		} else {
			width, height = w, h
		}
	}

	ext := path.Ext(file.Filename)
	objectName := "media/" + time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, &dto.MediaUploadDTO{
		URL:       minio.GetPublicURL(fileKey),
		MediaType: mediaType,
		MimeType:  contentType,
		Width:     width,
		Height:    height,
	})
}
