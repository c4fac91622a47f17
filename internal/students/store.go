package students

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"ojt-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

func (s *Store) Insert(ctx context.Context, st *Student) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO students (student_id, full_name, created_at, updated_at)
	VALUES (?, ?, NOW(6), NOW(6))`, st.StudentID, st.FullName)
	return err
}

func (s *Store) GetByID(ctx context.Context, studentID string) (*Student, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT student_id, full_name, created_at, updated_at
	FROM students
	WHERE student_id = ?
	LIMIT 1`, studentID)

	var r studentRow
	err := row.Scan(&r.StudentID, &r.FullName, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := r.toModel()
	return &m, nil
}

// List: 氏名順。q を渡すと学籍番号/氏名の部分一致で絞る。
func (s *Store) List(ctx context.Context, q string) ([]Student, error) {
	query := `
	SELECT student_id, full_name, created_at, updated_at
	FROM students`
	var args []any
	if q != "" {
		query += ` WHERE student_id LIKE ? OR full_name LIKE ?`
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY full_name ASC, student_id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var r studentRow
		if err := rows.Scan(&r.StudentID, &r.FullName, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, studentID, newStudentID, fullName string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	UPDATE students
	SET student_id = ?, full_name = ?, updated_at = NOW(6)
	WHERE student_id = ?`, newStudentID, fullName, studentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, studentID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE student_id = ?`, studentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ===== helpers =====

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// 1451: 打刻履歴から参照されている行のDELETE
func isRowReferenced(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1451
}
