package salesforce

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/pkg/metrics"
)

// ── Salesforce 客户端错误 ──

var (
	ErrNotConfigured = errors.New("salesforce 未配置")
	ErrTokenRequest  = errors.New("salesforce token 请求失败")
	ErrQuery         = errors.New("salesforce 查询失败")
	ErrUnavailable   = errors.New("salesforce 暂不可用")
)

const defaultAPIVersion = "v57.0"

// statusError 非 2xx 响应
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%d %s - %s", e.code, http.StatusText(e.code), e.body)
}

// Options 客户端选项
type Options struct {
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client Salesforce REST 只读客户端
type Client struct {
	baseURL    string
	apiVersion string
	http       *http.Client
	tokens     TokenSource
	cb         *gobreaker.CircuitBreaker[[]byte]
	logger     *zap.Logger
}

// NewClient 创建 Salesforce 客户端
func NewClient(tokens TokenSource, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	version := opts.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiVersion: version,
		http:       httpClient,
		tokens:     tokens,
		cb:         newBreaker("salesforce-api", logger),
		logger:     logger,
	}
}

// BreakerState 熔断器当前状态（closed / half-open / open）
func (c *Client) BreakerState() string {
	return c.cb.State().String()
}

// QueryResult SOQL 查询原始结果
type QueryResult struct {
	TotalSize int               `json:"totalSize"`
	Done      bool              `json:"done"`
	Records   []json.RawMessage `json:"records"`
}

// Query 执行 SOQL 查询
func (c *Client) Query(ctx context.Context, soql string) (*QueryResult, error) {
	endpoint := fmt.Sprintf("%s/services/data/%s/query?q=%s", c.baseURL, c.apiVersion, url.QueryEscape(soql))

	body, err := c.get(ctx, "query", endpoint)
	if err != nil {
		return nil, err
	}

	var raw struct {
		TotalSize int                `json:"totalSize"`
		Done      bool               `json:"done"`
		Records   *[]json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: 响应格式无效: %v", ErrQuery, err)
	}
	if raw.Records == nil {
		return nil, fmt.Errorf("%w: 响应缺少 records 数组", ErrQuery)
	}

	c.logger.Debug("SOQL 查询完成",
		zap.Int("total_size", raw.TotalSize),
		zap.Bool("done", raw.Done),
		zap.Int("records", len(*raw.Records)),
	)

	return &QueryResult{TotalSize: raw.TotalSize, Done: raw.Done, Records: *raw.Records}, nil
}

// DescribeResult sobject 元数据（仅保留字段与选项列表）
type DescribeResult struct {
	Name   string          `json:"name"`
	Fields []DescribeField `json:"fields"`
}

// DescribeField 字段元数据
type DescribeField struct {
	Name           string          `json:"name"`
	Label          string          `json:"label"`
	Type           string          `json:"type"`
	PicklistValues []PicklistValue `json:"picklistValues"`
}

// Describe 获取 sobject 元数据
func (c *Client) Describe(ctx context.Context, sobject string) (*DescribeResult, error) {
	endpoint := fmt.Sprintf("%s/services/data/%s/sobjects/%s/describe", c.baseURL, c.apiVersion, url.PathEscape(sobject))

	body, err := c.get(ctx, "describe", endpoint)
	if err != nil {
		return nil, err
	}

	var result DescribeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: describe 响应格式无效: %v", ErrQuery, err)
	}
	return &result, nil
}

// get 发起带 Bearer Token 的 GET 请求，经熔断器保护
func (c *Client) get(ctx context.Context, kind, endpoint string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &statusError{code: resp.StatusCode, body: string(data)}
		}
		return data, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.SalesforceRequests.WithLabelValues(kind, "rejected").Inc()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.SalesforceRequests.WithLabelValues(kind, "error").Inc()
		c.logger.Error("Salesforce 请求失败", zap.String("kind", kind), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	metrics.SalesforceRequests.WithLabelValues(kind, "success").Inc()
	return body, nil
}
