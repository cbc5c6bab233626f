package consts

const (
	ProjectTotalViewsKey   = "analytics:project:total:"
	OwnerProjectViewsKey   = "analytics:owner:total:"
	PortfolioTotalViewsKey = "analytics:portfolio:total:"
	StatsCacheKey          = "analytics:stats:"
	AnalyticsDirtyKey      = "analytics:dirty"
	UserProfileKey         = "user:profile:"
	TokenBlockKey          = "auth:block:"
)

const (
	SeedLock = "analytics:seed:lock:"
)
