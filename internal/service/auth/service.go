package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
	"FarmPulse/internal/service/ratelimit"
	applogger "FarmPulse/pkg/logger"
)

var (
	// ErrInvalidCredentials covers both unknown accounts and wrong
	// passwords, so responses never reveal which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSamePassword       = errors.New("new password must differ from the current one")
)

const tokenIssuer = "farmpulse"

// Config tunes token issuance and login throttling.
type Config struct {
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	LoginBurst     float64
	LoginPerSecond float64
}

// Service handles account signup, login, password changes and bearer
// token verification.
type Service struct {
	users   repository.UserRepository
	logger  *applogger.Logger
	metrics repository.Metrics
	limiter *ratelimit.Limiter
	cfg     Config
	secret  []byte
	now     func() time.Time
}

func New(users repository.UserRepository, logger *applogger.Logger, metrics repository.Metrics, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.LoginBurst <= 0 {
		cfg.LoginBurst = 5
	}
	if cfg.LoginPerSecond <= 0 {
		cfg.LoginPerSecond = 0.2
	}
	return &Service{
		users:   users,
		logger:  logger,
		metrics: metrics,
		limiter: ratelimit.New(),
		cfg:     cfg,
		secret:  []byte(cfg.JWTSecret),
		now:     time.Now,
	}
}

// Signup creates the account and logs the new user straight in.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user signed up", applogger.String("username", username))
	return user, token, nil
}

// Login verifies the password and issues a token. Attempts are
// throttled per username so a stolen list cannot be brute-forced.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if !s.limiter.Allow("login:"+username, s.cfg.LoginBurst, s.cfg.LoginPerSecond) {
		s.metrics.RecordError("login_throttled")
		return nil, "", ErrTooManyAttempts
	}

	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("failed login", applogger.String("username", username))
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ChangePassword re-checks the current password before updating.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	if next == current {
		return ErrSamePassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	s.logger.Info("password changed", applogger.String("username", user.Username))
	return nil
}

// UserByID loads the account for profile views and middleware checks.
func (s *Service) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.ByID(ctx, id)
}

// VerifyToken validates a bearer token and returns the account id.
func (s *Service) VerifyToken(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
