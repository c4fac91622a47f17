package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

type Admin struct {
	AdminID      int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, a *Admin) error
	Delete(ctx context.Context, username string) (int64, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AdminStore {
	return &Store{db: db}
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	const q = `
SELECT admin_id, username, email, password_hash, role, created_at
FROM admins
WHERE username = ?
LIMIT 1
`
	var a Admin
	err := s.db.QueryRowContext(ctx, q, username).Scan(
		&a.AdminID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	const q = `
SELECT 1 FROM admins
WHERE username = ? OR email = ?
LIMIT 1
`
	var one int
	err := s.db.QueryRowContext(ctx, q, username, email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Create(ctx context.Context, a *Admin) error {
	const q = `
INSERT INTO admins (username, email, password_hash, role, created_at)
VALUES (?, ?, ?, ?, NOW(6))
`
	res, err := s.db.ExecContext(ctx, q, a.Username, a.Email, a.PasswordHash, a.Role)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.AdminID = id
	return nil
}

func (s *Store) Delete(ctx context.Context, username string) (int64, error) {
	const q = `DELETE FROM admins WHERE username = ?`
	res, err := s.db.ExecContext(ctx, q, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MySQL 1062 (ER_DUP_ENTRY)
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
