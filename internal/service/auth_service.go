package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrNotAuthenticated   = errors.New("未登录或会话已失效")
)

// TokenBlacklist 登出黑名单（Redis 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
// 仅校验一组配置的固定账号，会话以 JWT 写入 Cookie
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	Check(ctx context.Context, token string) *dto.AuthCheckResponse
	Logout(ctx context.Context, token string) error
}

type authService struct {
	email        string
	passwordHash []byte
	jwtMgr       *jwt.Manager
	blacklist    TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService 创建 AuthService 实例；启动时对配置密码做 bcrypt 哈希
// blacklist 为 nil 时登出仅清除 Cookie
func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		passwordHash: hash,
		jwtMgr:       jwtMgr,
		blacklist:    blacklist,
		logger:       logger,
	}, nil
}

func (s *authService) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	if strings.ToLower(strings.TrimSpace(req.Email)) != s.email {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwtMgr.GenerateSessionToken(s.email)
	if err != nil {
		s.logger.Error("生成会话 Token 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户登录成功", zap.String("email", s.email))
	return &dto.LoginResult{
		Token:     token,
		MaxAge:    int(s.jwtMgr.SessionTTL().Seconds()),
		ExpiresAt: claims.ExpiresAt.Time.Format(time.RFC3339),
	}, nil
}

func (s *authService) Check(ctx context.Context, token string) *dto.AuthCheckResponse {
	claims, err := s.validate(ctx, token)
	if err != nil {
		return &dto.AuthCheckResponse{IsAuthenticated: false}
	}
	return &dto.AuthCheckResponse{IsAuthenticated: true, Email: claims.Email}
}

// Logout 将 Token 的 jti 加入黑名单，TTL 为剩余有效期
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" || s.blacklist == nil {
		return nil
	}
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		// 已失效的 Token 无需拉黑
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("写入登出黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) validate(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Redis 故障时不阻断登录态检查
			s.logger.Warn("查询登出黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrNotAuthenticated
		}
	}
	return claims, nil
}
