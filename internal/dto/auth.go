package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthCheckResponse 登录态检查响应
type AuthCheckResponse struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Email           string `json:"email,omitempty"`
}

// LoginResult 登录成功后的会话信息
type LoginResult struct {
	Token     string
	MaxAge    int // Cookie 有效期（秒）
	ExpiresAt string
}
