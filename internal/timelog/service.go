package timelog

import (
	"context"
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"ojt-backend/internal/platform/db"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type logStore interface {
	FindForDay(ctx context.Context, studentID, date string) (*TimeLog, error)
	Insert(ctx context.Context, l *TimeLog) error
	Update(ctx context.Context, l *TimeLog) (int64, error)
	ListForDate(ctx context.Context, date string) ([]TimeLog, error)
	ListOpenShift(ctx context.Context, date, shift string) ([]TimeLog, error)
	ResolveStudent(ctx context.Context, studentID string) (string, bool, error)
}

// ===== Service本体 =====

// 同一 (student_id, log_date) への同時打刻は楽観ロックで直列化する。
// 競合時はこの回数まで読み直して再適用する。
const maxTapRetries = 3

type Service struct {
	store logStore
	clock Clock
	id    IDGen
	loc   *time.Location

	// Tx境界。テストではフェイクストアに差し替える。
	runTx    func(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
	storeFor func(tx db.DBTX) logStore
}

func NewService(dbh *sql.DB, timezone string) (*Service, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Service{
		store: NewStore(dbh),
		clock: realClock{},
		id:    ulidGen{},
		loc:   loc,
		runTx: func(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
			return db.RunInTx(ctx, dbh, nil, fn)
		},
		storeFor: func(tx db.DBTX) logStore { return NewStore(tx) },
	}, nil
}

// RecordEvent: キオスクの打刻1回分。
// 当日レコードを読み（なければ新規）、遷移を適用して保存する。
func (s *Service) RecordEvent(ctx context.Context, studentID string) (*TapResult, error) {
	if studentID == "" {
		return nil, ErrInvalid("student_id is required")
	}

	fullName, ok, err := s.store.ResolveStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound("student not found")
	}

	// 境界判定（12:00 / 17:00 / 日付の切り替わり）は常に設定TZで行う
	now := s.clock.Now().In(s.loc)
	date := now.Format(DateLayout)

	for i := 0; i < maxTapRetries; i++ {
		log, err := s.store.FindForDay(ctx, studentID, date)
		if err != nil {
			return nil, err
		}

		if log == nil {
			log = &TimeLog{
				StudentID: studentID,
				FullName:  fullName,
				LogDate:   date,
			}
			if log.TimeLogULID, err = s.id.New(); err != nil {
				return nil, err
			}
			message, err := apply(log, now)
			if err != nil {
				return nil, err
			}
			if err := s.store.Insert(ctx, log); err != nil {
				if isDuplicateKey(err) {
					// 同時打刻が先に当日行を作った → 読み直して更新側へ
					continue
				}
				return nil, err
			}
			log.UpdatedAt = now.UTC()
			return &TapResult{Message: message, Log: log.toDTO()}, nil
		}

		message, err := apply(log, now)
		if err != nil {
			return nil, err
		}
		n, err := s.store.Update(ctx, log)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// version競合 → 最新を読み直して再適用
			continue
		}
		log.UpdatedAt = now.UTC()
		return &TapResult{Message: message, Log: log.toDTO()}, nil
	}

	return nil, ErrConflict("concurrent update, please retry")
}

// ListForDate: ダッシュボードの当日一覧。on は "today" か YYYY-MM-DD。
func (s *Service) ListForDate(ctx context.Context, on string) ([]TimeLogResponse, error) {
	date, err := s.resolveDate(on)
	if err != nil {
		return nil, err
	}
	logs, err := s.store.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]TimeLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, logs[i].toDTO())
	}
	return out, nil
}

// AutoClose: 当日の打ち忘れ Out を一括補正する（管理画面から実行）。
// AM: am_out を "12:00 PM" で埋める。PM: pm_out を "05:00 PM" で埋めて完了扱い。
func (s *Service) AutoClose(ctx context.Context, shift string) (int64, error) {
	if shift != ShiftAM && shift != ShiftPM {
		return 0, ErrInvalid("type must be AM or PM")
	}
	date := s.clock.Now().In(s.loc).Format(DateLayout)

	var closed int64
	err := s.runTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := s.storeFor(tx)
		logs, err := st.ListOpenShift(ctx, date, shift)
		if err != nil {
			return err
		}
		for i := range logs {
			l := &logs[i]
			if shift == ShiftAM {
				v := amCloseLabel
				l.AmOut = &v
			} else {
				v := pmCloseLabel
				l.PmOut = &v
				l.Status = StatusCompleted
			}
			recomputeTotal(l)
			n, err := st.Update(ctx, l)
			if err != nil {
				return err
			}
			closed += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}

func (s *Service) resolveDate(on string) (string, error) {
	switch on {
	case "", "today":
		return s.clock.Now().In(s.loc).Format(DateLayout), nil
	}
	if _, err := time.ParseInLocation(DateLayout, on, s.loc); err != nil {
		return "", ErrInvalid("on must be YYYY-MM-DD or 'today'")
	}
	return on, nil
}
