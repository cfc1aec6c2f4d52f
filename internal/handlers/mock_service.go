package handlers

import (
	"context"
	"net/http"
	"time"

	"foodsafety/internal/models"
	"foodsafety/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      string
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseUserID   string
	parseRole     models.Role
	parseErr      error

	lastSignUpUsername string
	lastSignUpRole     models.Role
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, _ string, role models.Role) (string, error) {
	m.lastSignUpUsername = username
	m.lastSignUpRole = role
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, _ string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, models.Role, error) {
	m.lastParseToken = token
	return m.parseUserID, m.parseRole, m.parseErr
}

type mockRecords struct {
	submitResp models.TemperatureRecord
	submitErr  error
	listResp   []models.TemperatureRecord
	listErr    error

	lastSubmit   service.ReadingInput
	lastListUser string
	lastListDay  time.Time
	submitCalls  int
}

func (m *mockRecords) SubmitReading(_ context.Context, in service.ReadingInput) (models.TemperatureRecord, error) {
	m.submitCalls++
	m.lastSubmit = in
	return m.submitResp, m.submitErr
}
func (m *mockRecords) ListForDay(_ context.Context, userID string, day time.Time) ([]models.TemperatureRecord, error) {
	m.lastListUser = userID
	m.lastListDay = day
	return m.listResp, m.listErr
}

type mockAlerts struct {
	resolveResp models.Alert
	resolveErr  error
	getResp     models.Alert
	getErr      error
	listResp    []service.AlertView
	listErr     error

	lastResolve service.ResolveInput
	lastGetID   string
	lastFilter  service.AlertFilter
}

func (m *mockAlerts) Resolve(_ context.Context, in service.ResolveInput) (models.Alert, error) {
	m.lastResolve = in
	return m.resolveResp, m.resolveErr
}
func (m *mockAlerts) Get(_ context.Context, id string) (models.Alert, error) {
	m.lastGetID = id
	return m.getResp, m.getErr
}
func (m *mockAlerts) List(_ context.Context, f service.AlertFilter) ([]service.AlertView, error) {
	m.lastFilter = f
	return m.listResp, m.listErr
}
func (m *mockAlerts) Resolved(ctx context.Context) ([]service.AlertView, error) {
	resolved := true
	return m.List(ctx, service.AlertFilter{Resolved: &resolved})
}
func (m *mockAlerts) Unresolved(ctx context.Context) ([]service.AlertView, error) {
	resolved := false
	return m.List(ctx, service.AlertFilter{Resolved: &resolved})
}

type mockDashboard struct {
	resp    service.DaySummary
	err     error
	lastDay time.Time
}

func (m *mockDashboard) Summary(_ context.Context, day time.Time) (service.DaySummary, error) {
	m.lastDay = day
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func collaboratorAuth() *mockAuth {
	return &mockAuth{parseUserID: "user-1", parseRole: models.RoleCollaborator}
}

func auditorAuth() *mockAuth {
	return &mockAuth{parseUserID: "user-2", parseRole: models.RoleAuditor}
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
