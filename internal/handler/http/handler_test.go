// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/fallback"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/mock"
	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/MKhiriev/report-desk/internal/utils"
	"github.com/MKhiriev/report-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testLogin    = "admin"
	testPassword = "correct horse battery staple"
	testSignKey  = "test-sign-key"
	testIssuer   = "report-desk-test"
)

// testPasswordHash is computed once; bcrypt is slow on purpose.
var testPasswordHash = func() string {
	hash, err := utils.HashPassword(testPassword)
	if err != nil {
		panic(err)
	}
	return hash
}()

type apiFixture struct {
	server  *httptest.Server
	reports *mock.MockReportService
	admin   *mock.MockAdminService
}

func newAPIFixture(t *testing.T, blobDir string) *apiFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	reports := mock.NewMockReportService(ctrl)
	admin := mock.NewMockAdminService(ctrl)

	cfg := &config.StructuredConfig{
		App: config.App{
			TokenSignKey:      testSignKey,
			TokenIssuer:       testIssuer,
			TokenDuration:     time.Hour,
			AdminLogin:        testLogin,
			AdminPasswordHash: testPasswordHash,
			Version:           "1.4.2",
		},
	}
	if blobDir != "" {
		cfg.Storage.Blob = config.Blob{Backend: "files", Dir: blobDir}
	}

	h := NewHandler(&service.Services{ReportService: reports, AdminService: admin}, cfg, logger.Nop())
	server := httptest.NewServer(h.Init())
	t.Cleanup(server.Close)

	return &apiFixture{server: server, reports: reports, admin: admin}
}

func (f *apiFixture) do(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testIssuer, testLogin, time.Hour, testSignKey)
	require.NoError(t, err)
	return token.SignedString
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (f *apiFixture) maintenance(on bool) {
	settings := models.DefaultSettings()
	settings.MaintenanceMode = on
	f.admin.EXPECT().GetSettings(gomock.Any()).Return(settings, nil)
}

// ── Version and login ────────────────────────────────────────────────────────

func TestAPI_Version(t *testing.T) {
	f := newAPIFixture(t, "")

	resp := f.do(t, http.MethodGet, "/api/version/", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))
}

func TestAPI_Login(t *testing.T) {
	f := newAPIFixture(t, "")

	resp := f.do(t, http.MethodPost, "/api/admin/login", `{"login":"admin","password":"correct horse battery staple"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tokenString, err := utils.ParseBearerToken(resp.Header.Get("Authorization"))
	require.NoError(t, err)

	token, err := utils.ValidateAndParseJWTToken(tokenString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testLogin, token.Login)
}

func TestAPI_Login_Rejected(t *testing.T) {
	f := newAPIFixture(t, "")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "wrong password", body: `{"login":"admin","password":"guess"}`, status: http.StatusUnauthorized},
		{name: "wrong login", body: `{"login":"root","password":"correct horse battery staple"}`, status: http.StatusUnauthorized},
		{name: "malformed body", body: `{"login":`, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"login":"admin","password":"x","otp":"1"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/api/admin/login", tt.body, "")
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("Authorization"))
		})
	}
}

func TestAPI_AdminRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t, "")

	resp := f.do(t, http.MethodGet, "/api/admin/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/admin/users", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired, err := utils.GenerateJWTToken(testIssuer, testLogin, -time.Minute, testSignKey)
	if err == nil {
		resp = f.do(t, http.MethodGet, "/api/admin/users", "", expired.SignedString)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	f.admin.EXPECT().ListUsers(gomock.Any()).Return([]models.User{{ID: "u1", Name: "Ada"}}, nil)
	resp = f.do(t, http.MethodGet, "/api/admin/users", "", adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	users := decodeBody[[]models.User](t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

// ── Public routes ────────────────────────────────────────────────────────────

func TestAPI_SubmitReport(t *testing.T) {
	f := newAPIFixture(t, "")
	f.maintenance(false)

	f.reports.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in models.NewReport) (models.Report, error) {
			assert.Equal(t, "Crash", in.Title)
			require.NotNil(t, in.Screenshot)
			assert.Equal(t, []byte("png"), in.Screenshot.Data)
			return models.Report{ID: "r-1", Title: in.Title, Status: models.StatusPending}, nil
		},
	)

	body := `{"userId":"u1","type":"bug","title":"Crash","description":"It crashes on start.","screenshot":{"data":"cG5n","contentType":"image/png"}}`
	resp := f.do(t, http.MethodPost, "/api/reports", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	report := decodeBody[models.Report](t, resp)
	assert.Equal(t, "r-1", report.ID)
}

func TestAPI_SubmitReport_Errors(t *testing.T) {
	tests := []struct {
		name   string
		report models.Report
		err    error
		status int
		field  string
	}{
		{name: "validation", err: &service.ValidationError{Field: "title", Reason: "must not be empty"}, status: http.StatusBadRequest, field: "title"},
		{name: "upload", err: &service.UploadError{Name: "report_u1_1", Err: errors.New("s3 down")}, status: http.StatusBadGateway},
		{name: "absorbed store failure", status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t, "")
			f.maintenance(false)
			f.reports.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(tt.report, tt.err)

			resp := f.do(t, http.MethodPost, "/api/reports", `{"title":"x"}`, "")
			require.Equal(t, tt.status, resp.StatusCode)

			body := decodeBody[errorResponse](t, resp)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.field, body.Field)
		})
	}
}

func TestAPI_PublicRoutesClosedDuringMaintenance(t *testing.T) {
	f := newAPIFixture(t, "")
	f.maintenance(true)

	resp := f.do(t, http.MethodGet, "/api/users/u1/reports", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "120", resp.Header.Get("Retry-After"))

	f.admin.EXPECT().GetSettings(gomock.Any()).Return(models.SystemSettings{MaintenanceMode: true}, nil)
	resp = f.do(t, http.MethodGet, "/api/admin/settings", "", adminToken(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin routes stay open")
}

func TestAPI_ListUserReports(t *testing.T) {
	f := newAPIFixture(t, "")
	f.maintenance(false)

	f.reports.EXPECT().ListForUser(gomock.Any(), "u1").Return([]models.Report{{ID: "r-2"}, {ID: "r-1"}}, nil)

	resp := f.do(t, http.MethodGet, "/api/users/u1/reports", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Report](t, resp), 2)
}

// ── Admin report routes ──────────────────────────────────────────────────────

func TestAPI_ListReports_StatusFilter(t *testing.T) {
	f := newAPIFixture(t, "")

	f.reports.EXPECT().ListAll(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, status *models.ReportStatus) ([]models.ReportWithUser, error) {
			require.NotNil(t, status)
			assert.Equal(t, models.StatusResolved, *status)
			return []models.ReportWithUser{}, nil
		},
	)
	resp := f.do(t, http.MethodGet, "/api/admin/reports?status=resolved", "", adminToken(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	f.reports.EXPECT().ListAll(gomock.Any(), (*models.ReportStatus)(nil)).Return([]models.ReportWithUser{}, nil)
	resp = f.do(t, http.MethodGet, "/api/admin/reports", "", adminToken(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_ReportStatistics(t *testing.T) {
	f := newAPIFixture(t, "")

	f.reports.EXPECT().Statistics(gomock.Any()).Return(models.ReportStats{TotalReports: 3, PendingReports: 2}, nil)

	resp := f.do(t, http.MethodGet, "/api/admin/reports/stats", "", adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw := decodeBody[map[string]any](t, resp)
	assert.EqualValues(t, 3, raw["totalReports"])
	assert.EqualValues(t, 2, raw["pendingReports"])
}

func TestAPI_GetReport(t *testing.T) {
	f := newAPIFixture(t, "")
	token := adminToken(t)

	f.reports.EXPECT().Get(gomock.Any(), "r-1").Return(models.Report{ID: "r-1"}, nil)
	resp := f.do(t, http.MethodGet, "/api/admin/reports/r-1", "", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	f.reports.EXPECT().Get(gomock.Any(), "r-9").Return(models.Report{}, &service.NotFoundError{Collection: "reports", ID: "r-9"})
	resp = f.do(t, http.MethodGet, "/api/admin/reports/r-9", "", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ReportMutations(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		expect func(r *mock.MockReportService) *gomock.Call
		ok     bool
		err    error
		status int
	}{
		{
			name: "respond", method: http.MethodPost, path: "/api/admin/reports/r-1/responses",
			body: `{"text":"Fixed","developerName":"Bo"}`,
			expect: func(r *mock.MockReportService) *gomock.Call {
				return r.EXPECT().AddResponse(gomock.Any(), "r-1", "Fixed", "Bo")
			},
			ok: true, status: http.StatusOK,
		},
		{
			name: "respond to closed report", method: http.MethodPost, path: "/api/admin/reports/r-1/responses",
			body: `{"text":"Fixed"}`,
			expect: func(r *mock.MockReportService) *gomock.Call {
				return r.EXPECT().AddResponse(gomock.Any(), "r-1", "Fixed", "")
			},
			err: &service.InvalidTransitionError{From: models.StatusClosed, To: models.StatusResponded}, status: http.StatusConflict,
		},
		{
			name: "resolve absorbed", method: http.MethodPost, path: "/api/admin/reports/r-1/resolve",
			expect: func(r *mock.MockReportService) *gomock.Call {
				return r.EXPECT().Resolve(gomock.Any(), "r-1")
			},
			ok: false, status: http.StatusServiceUnavailable,
		},
		{
			name: "status", method: http.MethodPut, path: "/api/admin/reports/r-1/status",
			body: `{"status":"in_progress"}`,
			expect: func(r *mock.MockReportService) *gomock.Call {
				return r.EXPECT().UpdateStatus(gomock.Any(), "r-1", models.StatusInProgress)
			},
			ok: true, status: http.StatusOK,
		},
		{
			name: "viewed missing", method: http.MethodPost, path: "/api/admin/reports/r-9/viewed",
			expect: func(r *mock.MockReportService) *gomock.Call {
				return r.EXPECT().MarkViewed(gomock.Any(), "r-9")
			},
			err: &service.NotFoundError{Collection: "reports", ID: "r-9"}, status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t, "")
			tt.expect(f.reports).Return(tt.ok, tt.err)

			resp := f.do(t, tt.method, tt.path, tt.body, adminToken(t))
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAPI_UpdateStatus_BadBody(t *testing.T) {
	f := newAPIFixture(t, "")

	resp := f.do(t, http.MethodPut, "/api/admin/reports/r-1/status", `{"state":"closed"}`, adminToken(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Admin directory routes ───────────────────────────────────────────────────

func TestAPI_DirectoryMutations(t *testing.T) {
	f := newAPIFixture(t, "")
	token := adminToken(t)

	f.admin.EXPECT().BanUser(gomock.Any(), "u1").Return(true, nil)
	resp := f.do(t, http.MethodPost, "/api/admin/users/u1/ban", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeBody[models.OperationResult](t, resp).OK)

	f.admin.EXPECT().ApproveBusiness(gomock.Any(), "b9").Return(false, &service.NotFoundError{Collection: "businesses", ID: "b9"})
	resp = f.do(t, http.MethodPost, "/api/admin/businesses/b9/approve", "", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	f.admin.EXPECT().ListBusinesses(gomock.Any()).Return([]models.Business{{ID: "b1", IsApproved: true}}, nil)
	resp = f.do(t, http.MethodGet, "/api/admin/businesses", "", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_UpdateSettings(t *testing.T) {
	f := newAPIFixture(t, "")
	token := adminToken(t)

	f.admin.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.SettingsUpdate) (bool, error) {
			require.NotNil(t, u.MaintenanceMode)
			assert.True(t, *u.MaintenanceMode)
			assert.Nil(t, u.AllowPayments)
			return true, nil
		},
	)
	resp := f.do(t, http.MethodPatch, "/api/admin/settings", `{"maintenanceMode":true}`, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	f.admin.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).
		Return(false, &service.ValidationError{Field: "defaultLanguage", Reason: "must be en or fr"})
	resp = f.do(t, http.MethodPatch, "/api/admin/settings", `{"defaultLanguage":"de"}`, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "defaultLanguage", decodeBody[errorResponse](t, resp).Field)
}

// ── Notices and blobs ────────────────────────────────────────────────────────

func TestAPI_NoticesBecomeHeaders(t *testing.T) {
	f := newAPIFixture(t, "")

	f.admin.EXPECT().ListUsers(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]models.User, error) {
			fallback.ContextNotifier{}.Notify(ctx, fallback.NewNotice(fallback.NoticeAccessDenied, "list users"))
			return []models.User{}, nil
		},
	)

	resp := f.do(t, http.MethodGet, "/api/admin/users", "", adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"access denied (list users)"}, resp.Header.Values(noticeHeader))
}

func TestAPI_ServesFileBlobs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report_u1_1"), []byte("png-bytes"), 0o644))

	f := newAPIFixture(t, dir)

	resp := f.do(t, http.MethodGet, "/blobs/report_u1_1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/blobs/missing", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_UnknownMethodIsNotFound(t *testing.T) {
	f := newAPIFixture(t, "")

	resp := f.do(t, http.MethodDelete, "/api/version/", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
