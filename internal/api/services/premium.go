package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/repositories"
)

type PremiumService struct {
	store   repositories.UserStore
	timeout time.Duration
}

func NewPremiumService(store repositories.UserStore, timeout time.Duration) *PremiumService {
	return &PremiumService{store: store, timeout: timeout}
}

// Purchase makes the user premium. There is no downgrade path, so a second
// purchase is rejected.
func (s *PremiumService) Purchase(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	if user.IsPremium {
		return nil, alreadyPremium()
	}

	changed, err := s.store.SetPremium(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	if !changed {
		return nil, alreadyPremium()
	}
	user.IsPremium = true
	return user, nil
}

func alreadyPremium() *apperr.Error {
	return apperr.New(apperr.AlreadyPremium, "User already has premium status")
}
