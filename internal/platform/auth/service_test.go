package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminStore struct {
	admins    map[string]*Admin // username → admin
	createErr error
}

func newFakeAdminStore() *fakeAdminStore {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	return &fakeAdminStore{admins: map[string]*Admin{
		"alice": {AdminID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: string(hash), Role: "admin"},
	}}
}

func (f *fakeAdminStore) GetByUsername(_ context.Context, username string) (*Admin, error) {
	a, ok := f.admins[username]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, a := range f.admins {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdminStore) Create(_ context.Context, a *Admin) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.AdminID = int64(len(f.admins) + 1)
	cp := *a
	f.admins[a.Username] = &cp
	return nil
}

func (f *fakeAdminStore) Delete(_ context.Context, username string) (int64, error) {
	if _, ok := f.admins[username]; !ok {
		return 0, nil
	}
	delete(f.admins, username)
	return 1, nil
}

func newTestService(store AdminStore) *Service {
	return &Service{store: store, secret: []byte("test-secret"), now: time.Now}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "ok", username: "alice", password: "correct-horse"},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "bob", password: "whatever", wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeAdminStore())
			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
				return []byte("test-secret"), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !parsed.Valid {
				t.Fatalf("issued token does not verify: %v", err)
			}
			claims := parsed.Claims.(jwt.MapClaims)
			if claims["sub"] != "alice" || claims["role"] != "admin" {
				t.Errorf("claims = %v", claims)
			}
		})
	}
}

func TestLoginExpiryClaim(t *testing.T) {
	svc := newTestService(newFakeAdminStore())
	fixed := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, err := svc.Login(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("exp claim: %v", err)
	}
	if want := fixed.Add(24 * time.Hour); !exp.Time.Equal(want) {
		t.Errorf("exp = %v, want %v", exp.Time, want)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{name: "ok", username: "carol", email: "carol@example.com"},
		{name: "duplicate username", username: "alice", email: "new@example.com", wantErr: ErrAlreadyExists},
		{name: "duplicate email", username: "alice2", email: "alice@example.com", wantErr: ErrAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeAdminStore()
			svc := newTestService(store)
			err := svc.Register(context.Background(), tt.username, tt.email, "hunter2-hunter2", "admin")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			created, _ := store.GetByUsername(context.Background(), tt.username)
			if created == nil {
				t.Fatal("admin not stored")
			}
			if created.PasswordHash == "hunter2-hunter2" {
				t.Error("password stored in plain text")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2-hunter2")); err != nil {
				t.Errorf("stored hash does not match password: %v", err)
			}
		})
	}
}

// 存在チェック通過後に別リクエストが同名を INSERT したケース
func TestRegisterLosesInsertRace(t *testing.T) {
	store := newFakeAdminStore()
	store.createErr = &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'carol' for key 'admins.username'"}
	svc := newTestService(store)

	err := svc.Register(context.Background(), "carol", "carol@example.com", "hunter2-hunter2", "admin")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Register() error = %v, want ErrAlreadyExists", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(newFakeAdminStore())
	if err := svc.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(context.Background(), "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
}
