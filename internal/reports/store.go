package reports

import (
	"context"
	"database/sql"
	"strings"

	"ojt-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

// List: 条件に応じて動的WHERE。日付の新しい順。
func (s *Store) List(ctx context.Context, q ReportQuery) ([]ReportRow, error) {
	var (
		sb     strings.Builder
		args   []any
		wheres []string
	)

	sb.WriteString(`
	SELECT student_id, full_name, DATE_FORMAT(log_date, '%Y-%m-%d') AS log_date,
	       am_in, am_out, pm_in, pm_out, ot_in, ot_out,
	       total_hours, status, updated_at
	FROM time_logs
	`)
	if q.StudentID != nil && *q.StudentID != "" {
		wheres = append(wheres, "student_id = ?")
		args = append(args, *q.StudentID)
	}
	if q.From != nil && *q.From != "" {
		wheres = append(wheres, "log_date >= ?")
		args = append(args, *q.From)
	}
	if q.To != nil && *q.To != "" {
		wheres = append(wheres, "log_date <= ?")
		args = append(args, *q.To)
	}
	if len(wheres) > 0 {
		sb.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	sb.WriteString(" ORDER BY log_date DESC, full_name ASC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		var (
			r                                     ReportRow
			amIn, amOut, pmIn, pmOut, otIn, otOut sql.NullString
		)
		if err := rows.Scan(&r.StudentID, &r.FullName, &r.LogDate,
			&amIn, &amOut, &pmIn, &pmOut, &otIn, &otOut,
			&r.TotalHours, &r.Status, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.AmIn = nullToPtr(amIn)
		r.AmOut = nullToPtr(amOut)
		r.PmIn = nullToPtr(pmIn)
		r.PmOut = nullToPtr(pmOut)
		r.OtIn = nullToPtr(otIn)
		r.OtOut = nullToPtr(otOut)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary: 期間の実働時間と出勤日数を学生別に合計（TOP N）
func (s *Store) Summary(ctx context.Context, from, to string, limit int) ([]SummaryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT student_id, MAX(full_name) AS full_name,
	       ROUND(SUM(total_hours), 2) AS total_hours,
	       COUNT(*) AS days_present
	FROM time_logs
	WHERE log_date BETWEEN ? AND ?
	GROUP BY student_id
	ORDER BY total_hours DESC, student_id ASC
	LIMIT ?`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(&r.StudentID, &r.FullName, &r.TotalHours, &r.DaysPresent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Overall: 期間全体の実働合計と延べ出勤日数
func (s *Store) Overall(ctx context.Context, from, to string) (float64, int64, error) {
	var (
		hours sql.NullFloat64
		days  int64
	)
	err := s.db.QueryRowContext(ctx, `
	SELECT ROUND(COALESCE(SUM(total_hours), 0), 2), COUNT(*)
	FROM time_logs
	WHERE log_date BETWEEN ? AND ?`, from, to,
	).Scan(&hours, &days)
	if err != nil {
		return 0, 0, err
	}
	return hours.Float64, days, nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
