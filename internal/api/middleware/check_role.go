package middleware

import (
	"ProjectShelf/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRole 检查当前用户角色是否在允许列表内
func CheckRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}

		response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
		c.Abort()
	}
}
