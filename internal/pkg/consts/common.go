package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
)

const (
	RoleVisitor = "VISITOR"
	RoleCreator = "CREATOR"
)

const (
	MediaTypeImage = "IMAGE"
	MediaTypeVideo = "VIDEO"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	BaseURL = "base_url"
)

// AvatarMaxEdge 头像上传后的最长边像素
const AvatarMaxEdge = 512
