package students

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ojt-backend/internal/platform/db"
)

// ===== Error model (timelog と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	store *Store
	title cases.Caser
}

func NewService(dbtx db.DBTX) *Service {
	return &Service{
		store: NewStore(dbtx),
		title: cases.Title(language.English),
	}
}

func (s *Service) Create(ctx context.Context, in CreateStudentRequest) (StudentResponse, error) {
	id := strings.TrimSpace(in.StudentID)
	if id == "" {
		return StudentResponse{}, ErrInvalid("student_id is required")
	}
	name := s.normalizeName(in.FullName)
	if name == "" {
		return StudentResponse{}, ErrInvalid("full_name is required")
	}

	st := &Student{StudentID: id, FullName: name}
	if err := s.store.Insert(ctx, st); err != nil {
		if isDuplicateKey(err) {
			return StudentResponse{}, ErrConflict("student_id already exists")
		}
		return StudentResponse{}, err
	}

	created, err := s.store.GetByID(ctx, id)
	if err != nil {
		return StudentResponse{}, err
	}
	return created.toDTO(), nil
}

func (s *Service) Get(ctx context.Context, studentID string) (StudentResponse, error) {
	st, err := s.store.GetByID(ctx, studentID)
	if err != nil {
		return StudentResponse{}, err
	}
	if st == nil {
		return StudentResponse{}, ErrNotFound("student not found")
	}
	return st.toDTO(), nil
}

func (s *Service) List(ctx context.Context, q string) ([]StudentResponse, error) {
	rows, err := s.store.List(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, studentID string, in UpdateStudentRequest) (StudentResponse, error) {
	name := s.normalizeName(in.FullName)
	if name == "" {
		return StudentResponse{}, ErrInvalid("full_name is required")
	}

	newID := studentID
	if in.NewStudentID != nil && strings.TrimSpace(*in.NewStudentID) != "" {
		newID = strings.TrimSpace(*in.NewStudentID)
	}

	n, err := s.store.Update(ctx, studentID, newID, name)
	if err != nil {
		if isDuplicateKey(err) {
			return StudentResponse{}, ErrConflict("new student_id already exists")
		}
		if isRowReferenced(err) {
			return StudentResponse{}, ErrConflict("student has time logs and cannot change student_id")
		}
		return StudentResponse{}, err
	}
	if n == 0 {
		return StudentResponse{}, ErrNotFound("student not found")
	}
	return s.Get(ctx, newID)
}

func (s *Service) Delete(ctx context.Context, studentID string) error {
	n, err := s.store.Delete(ctx, studentID)
	if err != nil {
		if isRowReferenced(err) {
			return ErrConflict("student has time logs and cannot be deleted")
		}
		return err
	}
	if n == 0 {
		return ErrNotFound("student not found")
	}
	return nil
}

// normalizeName: 余分な空白を潰して英字名をタイトルケースに揃える。
// 台帳作成時点の表示名が打刻レコードへスナップショットされるため、ここで正規化する。
func (s *Service) normalizeName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	if collapsed == "" {
		return ""
	}
	return s.title.String(collapsed)
}
