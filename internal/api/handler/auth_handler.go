package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cookie  config.CookieConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cookie config.CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "authToken"
	}
	return &AuthHandler{authSvc: authSvc, cookie: cookie}
}

// Login 登录并写入会话 Cookie
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid login request", err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setCookie(c, result.Token, result.MaxAge)
	response.OK(c, gin.H{"message": "Login successful!", "expiresAt": result.ExpiresAt})
}

// Logout 清除 Cookie，并尽力拉黑当前 Token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	// 黑名单写入失败不影响登出
	_ = h.authSvc.Logout(c.Request.Context(), token)

	h.setCookie(c, "", -1)
	response.OK(c, nil)
}

// Check 登录态检查
// GET /api/auth/check
func (h *AuthHandler) Check(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	result := h.authSvc.Check(c.Request.Context(), token)

	fields := gin.H{"isAuthenticated": result.IsAuthenticated}
	if result.Email != "" {
		fields["email"] = result.Email
	}
	response.OK(c, fields)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid credentials")
	default:
		response.InternalError(c, "Login failed", err)
	}
}
