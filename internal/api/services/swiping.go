package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/dealls/internal/api/validation"
	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/repositories"
	"github.com/rohits-web03/dealls/internal/swipe"
)

type SwipeInput struct {
	TargetUserID string `json:"targetUserId" validate:"required,uuid"`
	Direction    string `json:"direction" validate:"required,oneof=left right"`
}

type SwipeService struct {
	store    repositories.UserStore
	validate *validation.Validator
	timeout  time.Duration
	now      func() time.Time
}

func NewSwipeService(store repositories.UserStore, v *validation.Validator, timeout time.Duration) *SwipeService {
	return &SwipeService{store: store, validate: v, timeout: timeout, now: time.Now}
}

// Swipe records actorID's swipe on the input's target. Quota rejections are
// returned as an Outcome that is not Accepted, with a nil error.
func (s *SwipeService) Swipe(ctx context.Context, actorID uuid.UUID, in SwipeInput) (swipe.Outcome, error) {
	if err := s.validate.Struct(in); err != nil {
		return swipe.Outcome{}, err
	}
	targetID := uuid.MustParse(in.TargetUserID)
	if targetID == actorID {
		return swipe.Outcome{}, apperr.New(apperr.SelfTarget, "You cannot swipe on your own profile.")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var actorErr, targetErr error
	var target *models.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, actorErr = s.store.FindByID(gctx, actorID)
		return ignoreNotFound(actorErr)
	})
	g.Go(func() error {
		target, targetErr = s.store.FindByID(gctx, targetID)
		return ignoreNotFound(targetErr)
	})
	if err := g.Wait(); err != nil {
		return swipe.Outcome{}, apperr.Storage(err)
	}
	if actorErr != nil {
		return swipe.Outcome{}, apperr.New(apperr.NotFound, "User not found")
	}
	if targetErr != nil {
		return swipe.Outcome{}, apperr.New(apperr.NotFound, "Target user not found.")
	}

	direction := models.Direction(in.Direction)
	now := s.now()
	out, err := s.store.Swipe(ctx, actorID, func(actor *models.User) swipe.Outcome {
		return swipe.Evaluate(actor, target, direction, now)
	})
	if err != nil {
		return swipe.Outcome{}, storeError(err, "User not found")
	}
	return out, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}
