package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult *dto.LoginResult
	loginErr    error
	checkResult *dto.AuthCheckResponse
	loggedOut   string
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResult, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Check(_ context.Context, _ string) *dto.AuthCheckResponse {
	if m.checkResult == nil {
		return &dto.AuthCheckResponse{}
	}
	return m.checkResult
}
func (m *mockAuthService) Logout(_ context.Context, token string) error {
	m.loggedOut = token
	return nil
}

// ── Mock ProjectService ──

type mockProjectService struct {
	list      []model.ProjectView
	detail    *dto.ProjectDetailResponse
	err       error
	updatedID int
}

func (m *mockProjectService) List(_ context.Context) ([]model.ProjectView, error) {
	return m.list, m.err
}
func (m *mockProjectService) GetDetail(_ context.Context, _ int) (*dto.ProjectDetailResponse, error) {
	return m.detail, m.err
}
func (m *mockProjectService) Update(_ context.Context, id int, _ *dto.UpdateProjectRequest) error {
	m.updatedID = id
	return m.err
}

// ── Mock SyncService ──

type mockSyncService struct {
	result *dto.SyncResult
	err    error
}

func (m *mockSyncService) Run(_ context.Context) (*dto.SyncResult, error) {
	return m.result, m.err
}

// ── Mock SalesforceService ──

type mockSalesforceService struct {
	records *service.Records
	err     error
	course  string
}

func (m *mockSalesforceService) Accounts(_ context.Context) (*service.Records, error) {
	return m.records, m.err
}
func (m *mockSalesforceService) Partners(_ context.Context) (*service.Records, error) {
	return m.records, m.err
}
func (m *mockSalesforceService) Contacts(_ context.Context) (*service.Records, error) {
	return m.records, m.err
}
func (m *mockSalesforceService) Projects(_ context.Context) (*service.Records, error) {
	return m.records, m.err
}
func (m *mockSalesforceService) Leads(_ context.Context) (*service.Records, error) {
	return m.records, m.err
}
func (m *mockSalesforceService) Courses(_ context.Context) (*service.Records, error) {
	return m.records, m.err
}
func (m *mockSalesforceService) Modules(_ context.Context, course string) (*service.Records, error) {
	m.course = course
	return m.records, m.err
}
func (m *mockSalesforceService) ModulePicklist(_ context.Context) (*service.Records, error) {
	return m.records, m.err
}
func (m *mockSalesforceService) Status() service.SalesforceStatus {
	return service.SalesforceStatus{Connected: false, Configured: false, Breaker: "closed"}
}

// ── Mock ProspectionCardService ──

type mockCardService struct {
	card *dto.ProspectionCardResponse
	err  error
}

func (m *mockCardService) List(_ context.Context) ([]dto.ProspectionCardResponse, error) {
	return []dto.ProspectionCardResponse{}, m.err
}
func (m *mockCardService) GetByID(_ context.Context, _ int) (*dto.ProspectionCardResponse, error) {
	return m.card, m.err
}
func (m *mockCardService) Create(_ context.Context, _ *dto.CreateProspectionCardRequest) (*dto.ProspectionCardResponse, error) {
	return m.card, m.err
}
func (m *mockCardService) Update(_ context.Context, _ int, _ *dto.UpdateProspectionCardRequest) (*dto.ProspectionCardResponse, error) {
	return m.card, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportProjects(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, route, path string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, h)
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	mock := &mockAuthService{loginResult: &dto.LoginResult{Token: "jwt-token", MaxAge: 3600}}
	h := NewAuthHandler(mock, config.CookieConfig{})

	w := serve("POST", "/api/login", "/api/login",
		jsonBody(dto.LoginRequest{Email: "pmo@example.com", Password: "secret"}), h.Login)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp["success"] != true {
		t.Errorf("expected success=true, got %v", resp["success"])
	}
	cookie := findCookie(w, "authToken")
	if cookie == nil {
		t.Fatal("expected authToken cookie to be set")
	}
	if cookie.Value != "jwt-token" || !cookie.HttpOnly || cookie.MaxAge != 3600 {
		t.Errorf("unexpected cookie: %+v", cookie)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, config.CookieConfig{})

	w := serve("POST", "/api/login", "/api/login", bytes.NewReader([]byte("invalid json")), h.Login)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, config.CookieConfig{})

	w := serve("POST", "/api/login", "/api/login",
		jsonBody(dto.LoginRequest{Email: "pmo@example.com", Password: "wrong"}), h.Login)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp["success"] != false || resp["message"] != "Invalid credentials" {
		t.Errorf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, config.CookieConfig{})

	r := gin.New()
	r.POST("/api/auth/logout", h.Logout)
	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: "old-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.loggedOut != "old-token" {
		t.Errorf("expected token passed to Logout, got %q", mock.loggedOut)
	}
	cookie := findCookie(w, "authToken")
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Errorf("expected authToken cookie to be expired, got %+v", cookie)
	}
}

func TestAuthHandler_Check(t *testing.T) {
	mock := &mockAuthService{checkResult: &dto.AuthCheckResponse{IsAuthenticated: true, Email: "pmo@example.com"}}
	h := NewAuthHandler(mock, config.CookieConfig{})

	w := serve("GET", "/api/auth/check", "/api/auth/check", nil, h.Check)

	resp := parseResponse(w)
	if resp["isAuthenticated"] != true || resp["email"] != "pmo@example.com" {
		t.Errorf("unexpected body: %v", resp)
	}
}

// ═══════════════════════════════════════════════════════════
// ProjectHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProjectHandler_List(t *testing.T) {
	mock := &mockProjectService{list: []model.ProjectView{{ID: 1, Title: "Drone"}}}
	h := NewProjectHandler(mock)

	w := serve("GET", "/api/projects", "/api/projects", nil, h.List)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	projects, ok := parseResponse(w)["projects"].([]interface{})
	if !ok || len(projects) != 1 {
		t.Errorf("expected 1 project, got %v", parseResponse(w)["projects"])
	}
}

func TestProjectHandler_Update_NotFound(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{err: service.ErrProjectNotFound})

	w := serve("PUT", "/api/projects/:id", "/api/projects/9", jsonBody(map[string]string{"comment": "x"}), h.Update)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if parseResponse(w)["message"] != "Project not found" {
		t.Errorf("unexpected message: %v", parseResponse(w)["message"])
	}
}

func TestProjectHandler_Update_Success(t *testing.T) {
	mock := &mockProjectService{}
	h := NewProjectHandler(mock)

	w := serve("PUT", "/api/projects/:id", "/api/projects/12", jsonBody(map[string]string{"status": "Concluído"}), h.Update)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.updatedID != 12 {
		t.Errorf("expected id 12, got %d", mock.updatedID)
	}
}

func TestProjectHandler_Get_InvalidID(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{})

	w := serve("GET", "/api/projects/:id", "/api/projects/abc", nil, h.Get)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SyncHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSyncHandler_Success(t *testing.T) {
	mock := &mockSyncService{result: &dto.SyncResult{RunID: "run-1"}}
	h := NewSyncHandler(mock)

	w := serve("POST", "/api/sync/salesforce", "/api/sync/salesforce", nil, h.SyncSalesforce)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp["runId"] != "run-1" {
		t.Errorf("expected runId run-1, got %v", resp["runId"])
	}
	if _, ok := resp["stats"].(map[string]interface{}); !ok {
		t.Errorf("expected stats object, got %v", resp["stats"])
	}
}

func TestSyncHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"in progress", service.ErrSyncInProgress, http.StatusConflict},
		{"not configured", fmt.Errorf("%w: partners: %w", service.ErrSyncFetch, salesforce.ErrNotConfigured), http.StatusServiceUnavailable},
		{"breaker open", fmt.Errorf("%w: leads: %w", service.ErrSyncFetch, salesforce.ErrUnavailable), http.StatusServiceUnavailable},
		{"query failed", fmt.Errorf("%w: projects: %w", service.ErrSyncFetch, salesforce.ErrQuery), http.StatusInternalServerError},
		{"tx failed", fmt.Errorf("%w: commit", service.ErrSyncFailed), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSyncHandler(&mockSyncService{err: tc.err})
			w := serve("POST", "/api/sync/salesforce", "/api/sync/salesforce", nil, h.SyncSalesforce)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
			if parseResponse(w)["success"] != false {
				t.Error("expected success=false")
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// SalesforceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSalesforceHandler_Records(t *testing.T) {
	mock := &mockSalesforceService{records: &service.Records{Count: 2, Records: []string{"a", "b"}}}
	h := NewSalesforceHandler(mock)

	w := serve("GET", "/api/salesforce/modules", "/api/salesforce/modules?course=CS", nil, h.Modules)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if parseResponse(w)["count"] != float64(2) {
		t.Errorf("expected count 2, got %v", parseResponse(w)["count"])
	}
	if mock.course != "CS" {
		t.Errorf("expected course CS, got %q", mock.course)
	}
}

func TestSalesforceHandler_NotConfigured(t *testing.T) {
	h := NewSalesforceHandler(&mockSalesforceService{err: salesforce.ErrNotConfigured})

	w := serve("GET", "/api/salesforce/accounts", "/api/salesforce/accounts", nil, h.Accounts)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ProspectionCardHandler / ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProspectionCardHandler_Create_Duplicate(t *testing.T) {
	h := NewProspectionCardHandler(&mockCardService{err: service.ErrProspectionCardDuplicate})

	w := serve("POST", "/api/prospection-cards", "/api/prospection-cards",
		jsonBody(map[string]interface{}{"course": "CS", "year": 2025, "period": 1}), h.Create)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestProspectionCardHandler_Create_MissingCourse(t *testing.T) {
	h := NewProspectionCardHandler(&mockCardService{})

	w := serve("POST", "/api/prospection-cards", "/api/prospection-cards",
		jsonBody(map[string]interface{}{"year": 2025, "period": 1}), h.Create)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestProspectionHandler_Get_NotFound(t *testing.T) {
	h := NewProspectionHandler(service.NewProspectionService(zap.NewNop()))

	w := serve("GET", "/api/prospections/:id", "/api/prospections/nope", nil, h.Get)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExportHandler_ExportProjects(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx-bytes"), filename: "projects_20250309.xlsx"}
	h := NewExportHandler(mock)

	w := serve("GET", "/api/projects/export", "/api/projects/export", nil, h.ExportProjects)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename*=UTF-8''projects_20250309.xlsx" {
		t.Errorf("unexpected disposition: %s", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestExportHandler_Error(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportGenerateFail})

	w := serve("GET", "/api/projects/export", "/api/projects/export", nil, h.ExportProjects)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestProspectionCardHandler_Create_BadClassCode(t *testing.T) {
	h := NewProspectionCardHandler(&mockCardService{})

	w := serve("POST", "/api/prospection-cards", "/api/prospection-cards",
		jsonBody(map[string]interface{}{"course": "CS", "year": 2025, "period": 1, "classCode": "2025-X"}), h.Create)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
