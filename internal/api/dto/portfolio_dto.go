package dto

// PortfolioDTO 对外作品集主页:用户资料 + 已发布项目
type PortfolioDTO struct {
	User     *UserDTO             `json:"user"`
	Projects []*ProjectSummaryDTO `json:"projects"`
	ShareURL string               `json:"share_url,omitempty"`
}
