package repository

import (
	"context"
	"errors"

	"FarmPulse/internal/domain/models"
)

// ErrUserNotFound is returned by account lookups that match nothing.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when a username or email is already taken.
var ErrUserExists = errors.New("user already exists")

// RecordStore persists the market record sequence as one unit. The store
// is shared across all users and written whole-file on every mutation.
type RecordStore interface {
	// Load returns every stored record in insertion order. A missing or
	// unreadable store reads as empty; load failures are never propagated.
	Load(ctx context.Context) []models.MarketRecord
	// Save overwrites the whole store with the given sequence.
	Save(ctx context.Context, records []models.MarketRecord) error
}

// UserRepository is the account store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id int64) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordAdded(userID string)
	RecordTraining(outcome string)
	RecordPrediction(kind, outcome string)
	RecordError(kind string)
	RecordWeatherFetch(outcome string)
	RecordReportRendered()
	RecordModelScore(model string, r2 float64)
	RecordLatency(op string, seconds float64)
}
