package students

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already clean", in: "Juan Dela Cruz", want: "Juan Dela Cruz"},
		{name: "lowercase", in: "juan dela cruz", want: "Juan Dela Cruz"},
		{name: "shouty", in: "JUAN DELA CRUZ", want: "Juan Dela Cruz"},
		{name: "extra whitespace", in: "  juan   dela\tcruz ", want: "Juan Dela Cruz"},
		{name: "blank", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.normalizeName(tt.in); got != tt.want {
				t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// バリデーションはストアに触る前に弾く（ここでは db=nil で呼べることが担保）
func TestCreateValidation(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name string
		req  CreateStudentRequest
	}{
		{name: "empty id", req: CreateStudentRequest{StudentID: "  ", FullName: "Juan Dela Cruz"}},
		{name: "empty name", req: CreateStudentRequest{StudentID: "S-001", FullName: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			var api *APIError
			if !errors.As(err, &api) || api.Code != CodeInvalidArgument {
				t.Fatalf("Create() error = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestUpdateValidation(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Update(context.Background(), "S-001", UpdateStudentRequest{FullName: " "})
	var api *APIError
	if !errors.As(err, &api) || api.Code != CodeInvalidArgument {
		t.Fatalf("Update() error = %v, want INVALID_ARGUMENT", err)
	}
}
