package timelog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(fs *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, newTestService(fs, phTime(7, 0)))
	return r
}

func TestTapEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "first tap", body: `{"student_id":"S-001"}`, wantStatus: http.StatusOK, wantMsg: "AM In Logged"},
		{name: "unknown student", body: `{"student_id":"GHOST"}`, wantStatus: http.StatusNotFound},
		{name: "missing student_id", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "broken json", body: `{"student_id"`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(newFakeStore())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/time-logs", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body=%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantMsg == "" {
				return
			}
			var res TapResult
			if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", res.Message, tt.wantMsg)
			}
		})
	}
}

// 窓の外の打刻は 400 で、理由がそのままクライアントに返る
func TestTapEndpointSequenceRejection(t *testing.T) {
	fs := newFakeStore()
	fs.logs[key("S-001", "2026-08-31")] = &TimeLog{
		TimeLogID: 1, StudentID: "S-001", FullName: "Juan Dela Cruz", LogDate: "2026-08-31",
		AmIn: sp("08:00 AM"), AmOut: sp("11:00 AM"), Status: StatusIncomplete, Version: 2,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, newTestService(fs, phTime(11, 30))) // PM開始前

	req := httptest.NewRequest(http.MethodPost, "/api/v1/time-logs", strings.NewReader(`{"student_id":"S-001"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body errorDTO
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error.Code != CodeInvalidSequence {
		t.Errorf("code = %s, want %s", body.Error.Code, CodeInvalidSequence)
	}
	if body.Error.Message != "PM shift starts at 12:00 PM" {
		t.Errorf("message = %q", body.Error.Message)
	}
}

func TestListEndpoint(t *testing.T) {
	fs := newFakeStore()
	fs.logs[key("S-001", "2026-08-31")] = &TimeLog{
		TimeLogID: 1, StudentID: "S-001", FullName: "Juan Dela Cruz",
		LogDate: "2026-08-31", AmIn: sp("07:00 AM"), Status: StatusIncomplete, Version: 1,
	}
	r := newTestRouter(fs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/time-logs?on=today", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Data []TimeLogResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].StudentID != "S-001" {
		t.Errorf("unexpected payload: %s", w.Body.String())
	}
}
