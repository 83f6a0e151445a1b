// Package dao provides data access objects for use in the tableau server.
package dao

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kestrel-labs/tableau/internal/engine"
	"github.com/kestrel-labs/tableau/internal/tableau"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Submissions() SubmissionRepository
	Close() error
}

// SubmissionRepository persists the history of formulas submitted for
// classification or decision, one row per request.
type SubmissionRepository interface {
	Create(ctx context.Context, sub Submission) (Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (Submission, error)

	// GetAllByUser retrieves every submission owned by userID, most recent
	// first.
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Submission, error)
	Delete(ctx context.Context, id uuid.UUID) (Submission, error)
	Close() error
}

// Submission is a record of one classify or decide request.
type Submission struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Created  time.Time
	Formula  tableau.Formula
	Category tableau.Category

	// Verdict is only meaningful when Decided is true; a plain classify
	// request never runs the engine.
	Verdict engine.Verdict
	Decided bool
}

type UserRepository interface {
	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)

	// Close closes the connection.
	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID     // PK, NOT NULL
	Username       string        // UNIQUE, NOT NULL
	Password       string        // NOT NULL
	Email          *mail.Address // NOT NULL
	Role           Role          // NOT NULL
	Created        time.Time     // NOT NULL
	Modified       time.Time
	LastLogoutTime time.Time // NOT NULL DEFAULT NOW()
	LastLoginTime  time.Time // NOT NULL
}
