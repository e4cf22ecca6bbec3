package utils

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/report-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── ReadJSON ─────────────────────────────────────────────────────────────────

func TestReadJSON_NewReportWithScreenshot(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	body := `{"userId":"u1","type":"bug","title":"Crash","description":"Crashes on login",` +
		`"screenshot":{"data":"` + base64.StdEncoding.EncodeToString(png) + `","contentType":"image/png"}}`
	r := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body))

	var in models.NewReport
	require.NoError(t, ReadJSON(r, &in))

	assert.Equal(t, "u1", in.UserID)
	assert.Equal(t, models.ReportTypeBug, in.Type)
	require.NotNil(t, in.Screenshot)
	assert.Equal(t, png, in.Screenshot.Data)
	assert.Equal(t, "image/png", in.Screenshot.ContentType)
}

func TestReadJSON_TrailingWhitespaceAccepted(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("{\"status\":\"closed\"}\n\t "))

	var req models.StatusRequest
	require.NoError(t, ReadJSON(r, &req))
	assert.Equal(t, models.StatusClosed, req.Status)
}

func TestReadJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "truncated", body: `{"text":`},
		{name: "unknown field", body: `{"text":"hi","priority":1}`},
		{name: "two documents", body: `{"text":"a"}{"text":"b"}`},
		{name: "wrong type", body: `{"text":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var req models.ResponseRequest
			err := ReadJSON(r, &req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "error decoding JSON body")
		})
	}
}

func TestReadJSON_BodyOverLimit(t *testing.T) {
	var body bytes.Buffer
	body.WriteString(`{"text":"`)
	body.Write(bytes.Repeat([]byte("a"), maxJSONBody))
	body.WriteString(`"}`)
	r := httptest.NewRequest(http.MethodPost, "/", &body)

	var req models.ResponseRequest
	assert.Error(t, ReadJSON(r, &req))
}

// ── WriteJSON ────────────────────────────────────────────────────────────────

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantStatus int
		wantBody   string
		wantType   string
	}{
		{
			name: "applied", data: models.OperationResult{OK: true}, status: http.StatusOK,
			wantStatus: http.StatusOK, wantBody: `{"ok":true}`, wantType: "application/json",
		},
		{
			name: "absorbed", data: models.OperationResult{}, status: http.StatusServiceUnavailable,
			wantStatus: http.StatusServiceUnavailable, wantBody: `{"ok":false}`, wantType: "application/json",
		},
		{
			name: "empty list", data: []models.User{}, status: http.StatusOK,
			wantStatus: http.StatusOK, wantBody: `[]`, wantType: "application/json",
		},
		{
			name: "unencodable", data: func() {}, status: http.StatusOK,
			wantStatus: http.StatusInternalServerError, wantBody: "error writing data to JSON\n",
			wantType: "text/plain; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.wantType, w.Header().Get("Content-Type"))
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
		})
	}
}
