package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/swipe"
)

// InMemoryUserStore keeps users in process memory. It backs local runs
// without DB_URL and the handler tests.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
	now   func() time.Time
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[uuid.UUID]*models.User),
		now:   time.Now,
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return &DuplicateFieldError{Field: "email"}
		}
		if u.Username == user.Username {
			return &DuplicateFieldError{Field: "username"}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, exists := s.users[user.ID]; exists {
		return &DuplicateFieldError{Field: "id"}
	}
	now := s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *InMemoryUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.find(ctx, func(u *models.User) bool { return u.ID == id })
}

func (s *InMemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.find(ctx, func(u *models.User) bool { return u.Email == email })
}

func (s *InMemoryUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.find(ctx, func(u *models.User) bool { return u.Username == username })
}

func (s *InMemoryUserStore) find(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.update(ctx, id, func(u *models.User) {
		stamp := at
		u.LastLogin = &stamp
	})
}

func (s *InMemoryUserStore) SetPremium(ctx context.Context, id uuid.UUID) (bool, error) {
	changed := false
	err := s.update(ctx, id, func(u *models.User) {
		if !u.IsPremium {
			u.IsPremium = true
			changed = true
		}
	})
	return changed, err
}

func (s *InMemoryUserStore) SetPhotoKey(ctx context.Context, id uuid.UUID, key string) error {
	return s.update(ctx, id, func(u *models.User) { u.PhotoKey = key })
}

func (s *InMemoryUserStore) update(ctx context.Context, id uuid.UUID, fn func(*models.User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	u.UpdatedAt = s.now()
	return nil
}

func (s *InMemoryUserStore) Swipe(ctx context.Context, actorID uuid.UUID, decide SwipeDecider) (swipe.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return swipe.Outcome{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[actorID]
	if !ok {
		return swipe.Outcome{}, ErrNotFound
	}

	actor := cloneUser(stored)
	out := decide(actor)

	if out.Reset {
		stored.SwipedProfiles = nil
		stored.LastSwipeDate = actor.LastSwipeDate
	}
	if out.Accepted {
		rec := *out.Record
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.CreatedAt = s.now()
		out.Record.ID, out.Record.CreatedAt = rec.ID, rec.CreatedAt
		stored.SwipedProfiles = append(stored.SwipedProfiles, rec)
	}
	if out.Reset || out.Accepted {
		stored.UpdatedAt = s.now()
	}
	return out, nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.SwipedProfiles = append([]models.SwipeRecord(nil), u.SwipedProfiles...)
	if u.LastSwipeDate != nil {
		t := *u.LastSwipeDate
		c.LastSwipeDate = &t
	}
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}
