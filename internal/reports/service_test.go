package reports

import (
	"context"
	"errors"
	"testing"
)

func wantInvalid(t *testing.T, err error) {
	t.Helper()
	var api *APIError
	if !errors.As(err, &api) || api.Code != CodeInvalidArgument {
		t.Fatalf("error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestListValidation(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name string
		q    ReportQuery
	}{
		{name: "bad from", q: ReportQuery{From: sp("31-08-2026")}},
		{name: "bad to", q: ReportQuery{To: sp("yesterday")}},
		{name: "inverted range", q: ReportQuery{From: sp("2026-08-31"), To: sp("2026-08-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.q)
			wantInvalid(t, err)
		})
	}
}

func TestSummaryValidation(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name string
		req  SummaryRequest
	}{
		{name: "missing from", req: SummaryRequest{To: "2026-08-31"}},
		{name: "bad to", req: SummaryRequest{From: "2026-08-01", To: "soon"}},
		{name: "inverted range", req: SummaryRequest{From: "2026-08-31", To: "2026-08-01"}},
		{name: "range too wide", req: SummaryRequest{From: "2020-01-01", To: "2026-08-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Summary(context.Background(), tt.req)
			wantInvalid(t, err)
		})
	}
}

func sp(s string) *string { return &s }
