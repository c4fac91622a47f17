package timelog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"ojt-backend/internal/platform/db"
)

const selectCols = `
	time_log_id, time_log_ulid, student_id, full_name,
	DATE_FORMAT(log_date, '%Y-%m-%d') AS log_date,
	am_in, am_out, pm_in, pm_out, ot_in, ot_out,
	total_hours, status, version, updated_at`

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

// FindForDay: (student_id, log_date) はUNIQUE。見つからなければ nil を返す。
func (s *Store) FindForDay(ctx context.Context, studentID, date string) (*TimeLog, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT`+selectCols+`
	FROM time_logs
	WHERE student_id = ? AND log_date = ?
	LIMIT 1`, studentID, date)

	var r timeLogRow
	if err := scanTimeLog(row.Scan, &r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

// Insert: 新規作成。(student_id, log_date) の重複は isDuplicateKey で判定できる。
func (s *Store) Insert(ctx context.Context, l *TimeLog) error {
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO time_logs
		(time_log_ulid, student_id, full_name, log_date,
		 am_in, am_out, pm_in, pm_out, ot_in, ot_out,
		 total_hours, status, version, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, NOW(6), NOW(6))`,
		l.TimeLogULID, l.StudentID, l.FullName, l.LogDate,
		ptrToNull(l.AmIn), ptrToNull(l.AmOut),
		ptrToNull(l.PmIn), ptrToNull(l.PmOut),
		ptrToNull(l.OtIn), ptrToNull(l.OtOut),
		l.TotalHours, l.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.TimeLogID = id
	l.Version = 1
	return nil
}

// Update: 楽観ロック。読み出し時の version が一致した行だけ更新する。
// 返り値 0 は競合（他の打刻が先に書いた）を意味する。
func (s *Store) Update(ctx context.Context, l *TimeLog) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	UPDATE time_logs
	SET am_in = ?, am_out = ?, pm_in = ?, pm_out = ?, ot_in = ?, ot_out = ?,
	    total_hours = ?, status = ?, version = version + 1, updated_at = NOW(6)
	WHERE time_log_id = ? AND version = ?`,
		ptrToNull(l.AmIn), ptrToNull(l.AmOut),
		ptrToNull(l.PmIn), ptrToNull(l.PmOut),
		ptrToNull(l.OtIn), ptrToNull(l.OtOut),
		l.TotalHours, l.Status,
		l.TimeLogID, l.Version)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		l.Version++
	}
	return n, nil
}

// ListForDate: 指定日の全打刻（更新の新しい順）
func (s *Store) ListForDate(ctx context.Context, date string) ([]TimeLog, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT`+selectCols+`
	FROM time_logs
	WHERE log_date = ?
	ORDER BY updated_at DESC, time_log_id DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TimeLog
	for rows.Next() {
		var r timeLogRow
		if err := scanTimeLog(rows.Scan, &r); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

// ListOpenShift: 自動退勤の対象行を取得する。Tx内で呼ぶ前提（行ロックあり）。
// shift=AM: am_in あり / am_out なし。shift=PM: pm_in あり / pm_out なし。
func (s *Store) ListOpenShift(ctx context.Context, date, shift string) ([]TimeLog, error) {
	var cond string
	switch shift {
	case ShiftAM:
		cond = "am_in IS NOT NULL AND am_out IS NULL"
	case ShiftPM:
		cond = "pm_in IS NOT NULL AND pm_out IS NULL"
	default:
		return nil, ErrInvalid("shift must be AM or PM")
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT`+selectCols+`
	FROM time_logs
	WHERE log_date = ? AND `+cond+`
	ORDER BY time_log_id ASC
	FOR UPDATE`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TimeLog
	for rows.Next() {
		var r timeLogRow
		if err := scanTimeLog(rows.Scan, &r); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

// ResolveStudent: 学生台帳の存在確認と表示名のスナップショット取得
func (s *Store) ResolveStudent(ctx context.Context, studentID string) (string, bool, error) {
	var fullName string
	err := s.db.QueryRowContext(ctx, `
	SELECT full_name FROM students WHERE student_id = ? LIMIT 1`, studentID,
	).Scan(&fullName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return fullName, true, nil
}

// ===== helpers =====

func scanTimeLog(scan func(dest ...any) error, r *timeLogRow) error {
	return scan(
		&r.TimeLogID, &r.TimeLogULID, &r.StudentID, &r.FullName, &r.LogDate,
		&r.AmIn, &r.AmOut, &r.PmIn, &r.PmOut, &r.OtIn, &r.OtOut,
		&r.TotalHours, &r.Status, &r.Version, &r.UpdatedAt,
	)
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
