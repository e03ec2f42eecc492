package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/swipe"
)

const pgUniqueViolation = "23505"

// GormUserStore is the postgres-backed UserStore.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Omit("SwipedProfiles").Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (s *GormUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *GormUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, "username = ?", username)
}

func (s *GormUserStore) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("db error: %w", err)
	}
}

func (s *GormUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormUserStore) SetPremium(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND is_premium = ?", id, false).
		Update("is_premium", true)
	if res.Error != nil {
		return false, fmt.Errorf("db error: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *GormUserStore) SetPhotoKey(ctx context.Context, id uuid.UUID, key string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("photo_key", key)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormUserStore) Swipe(ctx context.Context, actorID uuid.UUID, decide SwipeDecider) (swipe.Outcome, error) {
	var out swipe.Outcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var actor models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("SwipedProfiles", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at")
			}).
			Where("id = ?", actorID).
			First(&actor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock actor: %w", err)
		}

		out = decide(&actor)

		if out.Reset {
			if err := tx.Where("user_id = ?", actor.ID).Delete(&models.SwipeRecord{}).Error; err != nil {
				return fmt.Errorf("reset swipe history: %w", err)
			}
			if err := tx.Model(&models.User{}).Where("id = ?", actor.ID).
				Update("last_swipe_date", actor.LastSwipeDate).Error; err != nil {
				return fmt.Errorf("stamp last swipe date: %w", err)
			}
		}

		if out.Accepted {
			if out.Record.ID == uuid.Nil {
				out.Record.ID = uuid.New()
			}
			if err := tx.Create(out.Record).Error; err != nil {
				return fmt.Errorf("record swipe: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return swipe.Outcome{}, ErrNotFound
		}
		return swipe.Outcome{}, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// translateError turns unique violations into DuplicateFieldError, naming
// the field from the violated index.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &DuplicateFieldError{Field: fieldFromConstraint(pgErr.ConstraintName)}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateFieldError{Field: "record"}
	}
	return fmt.Errorf("db error: %w", err)
}

func fieldFromConstraint(name string) string {
	switch {
	case strings.HasSuffix(name, "_email"):
		return "email"
	case strings.HasSuffix(name, "_username"):
		return "username"
	case name == "idx_swipe_once_per_day":
		return "swipe"
	default:
		return "record"
	}
}
