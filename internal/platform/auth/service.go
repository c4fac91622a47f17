package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	// 「ユーザーが居ない」と「パスワード不一致」を呼び出し側で区別させない
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const tokenTTL = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password, role string) error
	Delete(ctx context.Context, username string) error
}

type Service struct {
	store  AdminStore
	secret []byte
	now    func() time.Time
}

// secret は設定経由で渡す（コードへの埋め込み・グローバル共有はしない）
func NewService(db *sql.DB, secret []byte) *Service {
	return &Service{store: NewStore(db), secret: secret, now: time.Now}
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  admin.Username,
		"role": admin.Role,
		"exp":  s.now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *Service) Register(ctx context.Context, username, email, password, role string) error {
	exists, err := s.store.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.store.Create(ctx, &Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	// 存在チェックと INSERT の間に割り込まれた場合は UNIQUE 違反で着地する
	if isDuplicateKey(err) {
		return ErrAlreadyExists
	}
	return err
}

func (s *Service) Delete(ctx context.Context, username string) error {
	n, err := s.store.Delete(ctx, username)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
