package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/swipe"
)

var ErrNotFound = errors.New("not found")

// DuplicateFieldError is returned by Create when a unique field is taken.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

// SwipeDecider evaluates a swipe against the locked actor. It may mutate the
// actor's history; the store persists what the returned outcome reports.
type SwipeDecider func(actor *models.User) swipe.Outcome

// UserStore persists users and their swipe history.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	// SetPremium flips is_premium to true. changed is false when the user
	// was already premium.
	SetPremium(ctx context.Context, id uuid.UUID) (changed bool, err error)
	SetPhotoKey(ctx context.Context, id uuid.UUID, key string) error
	// Swipe runs decide with the actor's history while no other swipe of
	// the same actor can interleave, then persists a day reset (accepted or
	// not) and the appended record (accepted only).
	Swipe(ctx context.Context, actorID uuid.UUID, decide SwipeDecider) (swipe.Outcome, error)
}
