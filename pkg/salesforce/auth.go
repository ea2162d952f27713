package salesforce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/MilanAlbertz/pmo-dashboard/pkg/metrics"
)

const (
	// defaultTokenLifetime 响应缺少 expires_in 时使用
	defaultTokenLifetime = 7200 * time.Second
	// expirySafetyMargin 提前一分钟视为过期
	expirySafetyMargin = 60 * time.Second
)

// TokenSource 提供 Bearer Token
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Credentials OAuth2 client-credentials 凭据
type Credentials struct {
	LoginURL     string
	ClientID     string
	ClientSecret string
}

func (c Credentials) validate() error {
	if c.LoginURL == "" {
		return fmt.Errorf("%w: SF_LOGIN_URL 未设置", ErrNotConfigured)
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("%w: SF_CLIENT_ID 与 SF_CLIENT_SECRET 必须设置", ErrNotConfigured)
	}
	return nil
}

// TokenProvider 获取并缓存 access token，过期前复用
type TokenProvider struct {
	creds Credentials
	http  *http.Client
	now   func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewTokenProvider 创建 TokenProvider
func NewTokenProvider(creds Credentials, httpClient *http.Client) *TokenProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenProvider{
		creds: creds,
		http:  httpClient,
		now:   time.Now,
	}
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	InstanceURL      string `json:"instance_url"`
	ExpiresIn        int64  `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Token 返回缓存的 token；缓存缺失或过期时重新申请
// 持锁申请，避免并发请求重复获取
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && p.now().Before(p.expiresAt) {
		return p.accessToken, nil
	}

	if err := p.creds.validate(); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.creds.ClientID)
	form.Set("client_secret", p.creds.ClientSecret)

	endpoint := strings.TrimRight(p.creds.LoginURL, "/") + "/services/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("构造 token 请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		metrics.SalesforceRequests.WithLabelValues("token", "error").Inc()
		return "", fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.SalesforceRequests.WithLabelValues("token", "error").Inc()
		return "", fmt.Errorf("%w: 读取响应失败: %v", ErrTokenRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.SalesforceRequests.WithLabelValues("token", "error").Inc()
		return "", fmt.Errorf("%w: %d %s - %s", ErrTokenRequest, resp.StatusCode, http.StatusText(resp.StatusCode), string(body))
	}

	var data tokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		metrics.SalesforceRequests.WithLabelValues("token", "error").Inc()
		return "", fmt.Errorf("%w: 响应不是合法 JSON: %s", ErrTokenRequest, string(body))
	}
	if data.AccessToken == "" {
		metrics.SalesforceRequests.WithLabelValues("token", "error").Inc()
		return "", fmt.Errorf("%w: 响应缺少 access_token: %s", ErrTokenRequest, string(body))
	}

	lifetime := defaultTokenLifetime
	if data.ExpiresIn > 0 {
		lifetime = time.Duration(data.ExpiresIn) * time.Second
	}

	p.accessToken = data.AccessToken
	p.expiresAt = p.now().Add(lifetime - expirySafetyMargin)
	metrics.SalesforceRequests.WithLabelValues("token", "success").Inc()

	return p.accessToken, nil
}

// ExpiresAt 当前缓存 token 的失效时间（零值表示无缓存）
func (p *TokenProvider) ExpiresAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiresAt
}
