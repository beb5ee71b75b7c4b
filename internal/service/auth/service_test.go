package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	applogger "FarmPulse/pkg/logger"
)

type memUsers struct {
	nextID int64
	byID   map[int64]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]*models.User)}
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	for _, u := range m.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUserExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) ByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) ByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) Close() error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordAdded(string)               {}
func (nopMetrics) RecordTraining(string)            {}
func (nopMetrics) RecordPrediction(string, string)  {}
func (nopMetrics) RecordError(string)               {}
func (nopMetrics) RecordWeatherFetch(string)        {}
func (nopMetrics) RecordReportRendered()            {}
func (nopMetrics) RecordModelScore(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)    {}

func newTestAuth(t *testing.T) (*Service, *memUsers) {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	users := newMemUsers()
	svc := New(users, log, nopMetrics{}, Config{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: 4, // minimum cost keeps the test fast
		LoginBurst: 3,
	})
	return svc, users
}

func TestSignupLoginRoundTrip(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "farmer1", "f1@example.com", "secret123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID == 0 || token == "" {
		t.Fatalf("signup did not issue id and token")
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password stored in clear")
	}

	got, loginToken, err := svc.Login(ctx, "farmer1", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID || loginToken == "" {
		t.Fatalf("unexpected login result")
	}

	id, err := svc.VerifyToken(loginToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token subject %d, want %d", id, user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "farmer1", "f1@example.com", "secret123"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := svc.Login(ctx, "farmer1", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown usernames answer the same way.
	if _, _, err := svc.Login(ctx, "ghost", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginThrottling(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "farmer1", "f1@example.com", "secret123"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	for i := 0; i < 3; i++ {
		svc.Login(ctx, "farmer1", "wrong")
	}
	if _, _, err := svc.Login(ctx, "farmer1", "secret123"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestDuplicateSignup(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "farmer1", "f1@example.com", "secret123"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := svc.Signup(ctx, "farmer1", "other@example.com", "secret123"); !errors.Is(err, repository.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "farmer1", "f1@example.com", "secret123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "wrong", "newpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "secret123", "secret123"); !errors.Is(err, ErrSamePassword) {
		t.Fatalf("expected ErrSamePassword, got %v", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "secret123", "newpass1"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, _, err := svc.Login(ctx, "farmer1", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuth(t)
	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "farmer1", "f1@example.com", "secret123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.issueToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.VerifyToken(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
