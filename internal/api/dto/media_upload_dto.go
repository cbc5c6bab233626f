package dto

// MediaUploadDTO 上传完成后的媒体元信息
type MediaUploadDTO struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
