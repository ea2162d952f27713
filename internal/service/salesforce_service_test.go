package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

type fakeSalesforceAPI struct {
	fakeSource
	state      string
	accountErr error
	gotLimit   int
	gotCourse  string
}

func (f *fakeSalesforceAPI) GetAccounts(_ context.Context, limit int) (*salesforce.Result[salesforce.Account], error) {
	f.gotLimit = limit
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return &salesforce.Result[salesforce.Account]{TotalSize: len(f.data.Partners), Records: f.data.Partners}, nil
}

func (f *fakeSalesforceAPI) GetModuleNames(_ context.Context, course string) (*salesforce.Result[salesforce.ModuleName], error) {
	f.gotCourse = course
	return &salesforce.Result[salesforce.ModuleName]{TotalSize: 1, Records: []salesforce.ModuleName{{}}}, nil
}

func (f *fakeSalesforceAPI) GetCourses(context.Context) (*salesforce.Result[salesforce.PicklistValue], error) {
	return &salesforce.Result[salesforce.PicklistValue]{}, nil
}

func (f *fakeSalesforceAPI) GetModulePicklistValues(context.Context) (*salesforce.Result[salesforce.PicklistValue], error) {
	return &salesforce.Result[salesforce.PicklistValue]{}, nil
}

func (f *fakeSalesforceAPI) BreakerState() string { return f.state }

func TestSalesforceService_Accounts(t *testing.T) {
	api := &fakeSalesforceAPI{state: "closed"}
	api.data.Partners = []salesforce.Account{{ID: "001A"}, {ID: "001B"}}
	svc := NewSalesforceService(api, true, zap.NewNop())

	recs, err := svc.Accounts(context.Background())
	if err != nil {
		t.Fatalf("Accounts 应成功: %v", err)
	}
	if recs.Count != 2 {
		t.Errorf("期望 count=2，实际=%d", recs.Count)
	}
	if api.gotLimit != defaultAccountLimit {
		t.Errorf("期望 limit=%d，实际=%d", defaultAccountLimit, api.gotLimit)
	}
}

func TestSalesforceService_PropagatesError(t *testing.T) {
	api := &fakeSalesforceAPI{state: "closed", accountErr: salesforce.ErrUnavailable}
	svc := NewSalesforceService(api, true, zap.NewNop())

	if _, err := svc.Accounts(context.Background()); !errors.Is(err, salesforce.ErrUnavailable) {
		t.Errorf("期望 ErrUnavailable，实际: %v", err)
	}
}

func TestSalesforceService_ModulesPassesCourse(t *testing.T) {
	api := &fakeSalesforceAPI{state: "closed"}
	svc := NewSalesforceService(api, true, zap.NewNop())

	recs, err := svc.Modules(context.Background(), "Engenharia de Software")
	if err != nil {
		t.Fatalf("Modules 应成功: %v", err)
	}
	if api.gotCourse != "Engenharia de Software" || recs.Count != 1 {
		t.Errorf("课程未透传或计数错误: course=%q count=%d", api.gotCourse, recs.Count)
	}
}

func TestSalesforceService_Status(t *testing.T) {
	cases := []struct {
		name       string
		configured bool
		state      string
		connected  bool
	}{
		{"正常", true, "closed", true},
		{"熔断打开", true, "open", false},
		{"未配置", false, "closed", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSalesforceService(&fakeSalesforceAPI{state: tc.state}, tc.configured, zap.NewNop())
			st := svc.Status()
			if st.Connected != tc.connected {
				t.Errorf("期望 connected=%v，实际=%v", tc.connected, st.Connected)
			}
			if st.Breaker != tc.state {
				t.Errorf("期望 breaker=%s，实际=%s", tc.state, st.Breaker)
			}
		})
	}
}
