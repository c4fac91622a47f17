package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ojt-backend/internal/platform/db"
)

// ===== Error model (timelog/students と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string     { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError { return &APIError{Code: CodeInvalidArgument, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) && api.Code == CodeInvalidArgument {
		return 400
	}
	return 500
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(dbh *sql.DB) *Service {
	return &Service{db: dbh, store: NewStore(dbh)}
}

// List: 学生・期間で絞った打刻履歴。total_hours はエンジンが更新の都度
// 再計算した確定値をそのまま返す。
func (s *Service) List(ctx context.Context, q ReportQuery) ([]ReportRow, error) {
	if err := validateOptionalDate(q.From, "from"); err != nil {
		return nil, err
	}
	if err := validateOptionalDate(q.To, "to"); err != nil {
		return nil, err
	}
	if q.From != nil && q.To != nil && *q.From != "" && *q.To != "" && *q.To < *q.From {
		return nil, ErrInvalid("to must be >= from")
	}
	return s.store.List(ctx, q)
}

func (s *Service) Summary(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	from, err := time.Parse(DateLayout, req.From)
	if err != nil {
		return nil, ErrInvalid("from must be YYYY-MM-DD")
	}
	to, err := time.Parse(DateLayout, req.To)
	if err != nil {
		return nil, ErrInvalid("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, ErrInvalid("to must be >= from")
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return nil, ErrInvalid("range too wide")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultTopN
	}
	if limit > MaxTopN {
		limit = MaxTopN
	}

	// TOP N と全体合計を同一スナップショットで読む
	var out SummaryResponse
	err = db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		items, err := st.Summary(ctx, req.From, req.To, limit)
		if err != nil {
			return err
		}
		hours, days, err := st.Overall(ctx, req.From, req.To)
		if err != nil {
			return err
		}
		out.Items = items
		out.OverallHours = hours
		out.OverallDays = days
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func validateOptionalDate(v *string, name string) error {
	if v == nil || *v == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, *v); err != nil {
		return ErrInvalid(name + " must be YYYY-MM-DD")
	}
	return nil
}
