package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

// defaultAccountLimit /api/salesforce/accounts 默认返回条数
const defaultAccountLimit = 100

// SalesforceAPI Salesforce 客户端能力（*salesforce.Client 实现）
type SalesforceAPI interface {
	SyncSource
	GetAccounts(ctx context.Context, limit int) (*salesforce.Result[salesforce.Account], error)
	GetModuleNames(ctx context.Context, course string) (*salesforce.Result[salesforce.ModuleName], error)
	GetCourses(ctx context.Context) (*salesforce.Result[salesforce.PicklistValue], error)
	GetModulePicklistValues(ctx context.Context) (*salesforce.Result[salesforce.PicklistValue], error)
	BreakerState() string
}

// Records 透传查询结果
type Records struct {
	Count   int
	Records interface{}
}

// SalesforceStatus 连接状态
type SalesforceStatus struct {
	Connected  bool   `json:"connected"`
	Configured bool   `json:"configured"`
	Breaker    string `json:"breaker"`
}

// SalesforceService Salesforce 只读透传接口
type SalesforceService interface {
	Accounts(ctx context.Context) (*Records, error)
	Partners(ctx context.Context) (*Records, error)
	Contacts(ctx context.Context) (*Records, error)
	Projects(ctx context.Context) (*Records, error)
	Leads(ctx context.Context) (*Records, error)
	Courses(ctx context.Context) (*Records, error)
	Modules(ctx context.Context, course string) (*Records, error)
	ModulePicklist(ctx context.Context) (*Records, error)
	Status() SalesforceStatus
}

type salesforceService struct {
	api        SalesforceAPI
	configured bool
	logger     *zap.Logger
}

// NewSalesforceService 创建 SalesforceService 实例
func NewSalesforceService(api SalesforceAPI, configured bool, logger *zap.Logger) SalesforceService {
	return &salesforceService{api: api, configured: configured, logger: logger}
}

// wrap 统一转换类型化结果并记录失败
func wrap[T any](s *salesforceService, what string, res *salesforce.Result[T], err error) (*Records, error) {
	if err != nil {
		s.logger.Warn("Salesforce 查询失败", zap.String("query", what), zap.Error(err))
		return nil, err
	}
	return &Records{Count: res.TotalSize, Records: res.Records}, nil
}

func (s *salesforceService) Accounts(ctx context.Context) (*Records, error) {
	res, err := s.api.GetAccounts(ctx, defaultAccountLimit)
	return wrap(s, "accounts", res, err)
}

func (s *salesforceService) Partners(ctx context.Context) (*Records, error) {
	res, err := s.api.GetPartners(ctx)
	return wrap(s, "partners", res, err)
}

func (s *salesforceService) Contacts(ctx context.Context) (*Records, error) {
	res, err := s.api.GetContacts(ctx)
	return wrap(s, "contacts", res, err)
}

func (s *salesforceService) Projects(ctx context.Context) (*Records, error) {
	res, err := s.api.GetProjects(ctx)
	return wrap(s, "projects", res, err)
}

func (s *salesforceService) Leads(ctx context.Context) (*Records, error) {
	res, err := s.api.GetLeads(ctx)
	return wrap(s, "leads", res, err)
}

func (s *salesforceService) Courses(ctx context.Context) (*Records, error) {
	res, err := s.api.GetCourses(ctx)
	return wrap(s, "courses", res, err)
}

func (s *salesforceService) Modules(ctx context.Context, course string) (*Records, error) {
	res, err := s.api.GetModuleNames(ctx, course)
	return wrap(s, "modules", res, err)
}

func (s *salesforceService) ModulePicklist(ctx context.Context) (*Records, error) {
	res, err := s.api.GetModulePicklistValues(ctx)
	return wrap(s, "module-picklist", res, err)
}

// Status 已配置且熔断器未打开即视为可连接
func (s *salesforceService) Status() SalesforceStatus {
	state := s.api.BreakerState()
	return SalesforceStatus{
		Connected:  s.configured && state != "open",
		Configured: s.configured,
		Breaker:    state,
	}
}
