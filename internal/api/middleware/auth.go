package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

const sessionEmailKey = "session_email"

// SessionAuth 会话认证中间件
// 从 Cookie 中读取会话 Token，交给 AuthService 校验（含登出黑名单）
func SessionAuth(authSvc service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		result := authSvc.Check(c.Request.Context(), token)
		if !result.IsAuthenticated {
			response.Unauthorized(c, "Session expired or invalid")
			c.Abort()
			return
		}

		c.Set(sessionEmailKey, result.Email)
		c.Next()
	}
}
