package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/dealls/internal/api/validation"
	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/models"
	"github.com/rohits-web03/dealls/internal/repositories"
	"github.com/rohits-web03/dealls/internal/utils"
)

const photoURLExpiry = 15 * time.Minute

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// PhotoStore is the object storage holding profile photos.
type PhotoStore interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

type Profile struct {
	ID              uuid.UUID              `json:"id"`
	Username        string                 `json:"username"`
	Email           string                 `json:"email"`
	IsPremium       bool                   `json:"isPremium"`
	PremiumFeatures models.PremiumFeatures `json:"premiumFeatures"`
	IsVerified      bool                   `json:"isVerified"`
	PhotoURL        string                 `json:"photoUrl,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastLogin       *time.Time             `json:"lastLogin"`
}

type PhotoUploadInput struct {
	ContentType string `json:"contentType" validate:"required,oneof=image/jpeg image/png image/webp"`
}

type PhotoUpload struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresIn string `json:"expiresIn"`
}

type PhotoCompleteInput struct {
	Key string `json:"key" validate:"required,max=200"`
}

type ProfileService struct {
	store    repositories.UserStore
	photos   PhotoStore
	validate *validation.Validator
	timeout  time.Duration
}

// NewProfileService builds the service; photos may be nil when object
// storage is not configured.
func NewProfileService(store repositories.UserStore, photos PhotoStore, v *validation.Validator, timeout time.Duration) *ProfileService {
	return &ProfileService{store: store, photos: photos, validate: v, timeout: timeout}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return s.profileOf(ctx, user)
}

func (s *ProfileService) profileOf(ctx context.Context, user *models.User) (*Profile, error) {
	p := &Profile{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		IsPremium:       user.IsPremium,
		PremiumFeatures: user.PremiumFeatures,
		IsVerified:      user.IsVerified(),
		CreatedAt:       user.CreatedAt,
		LastLogin:       user.LastLogin,
	}
	if user.PhotoKey != "" && s.photos != nil {
		url, err := s.photos.PresignGet(ctx, user.PhotoKey, photoURLExpiry)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		p.PhotoURL = url
	}
	return p, nil
}

// PresignPhoto returns an upload URL for a new profile photo under the
// user's own key prefix.
func (s *ProfileService) PresignPhoto(ctx context.Context, userID uuid.UUID, in PhotoUploadInput) (*PhotoUpload, error) {
	if s.photos == nil {
		return nil, photosUnavailable()
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	name, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	key := fmt.Sprintf("%s%s.%s", photoPrefix(userID), name, photoExtensions[in.ContentType])

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url, err := s.photos.PresignPut(ctx, key, in.ContentType, photoURLExpiry)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &PhotoUpload{URL: url, Key: key, ExpiresIn: photoURLExpiry.String()}, nil
}

// CompletePhoto attaches an uploaded object to the user's profile.
func (s *ProfileService) CompletePhoto(ctx context.Context, userID uuid.UUID, in PhotoCompleteInput) (*Profile, error) {
	if s.photos == nil {
		return nil, photosUnavailable()
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(in.Key, photoPrefix(userID)) || strings.Contains(in.Key, "..") {
		return nil, apperr.Invalid(apperr.FieldError{Field: "key", Message: "key does not belong to this user"})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.photos.Exists(ctx, in.Key)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Uploaded photo not found")
	}

	if err := s.store.SetPhotoKey(ctx, userID, in.Key); err != nil {
		return nil, storeError(err, "User not found")
	}
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return s.profileOf(ctx, user)
}

func photoPrefix(userID uuid.UUID) string {
	return "profiles/" + userID.String() + "/"
}

func photosUnavailable() *apperr.Error {
	return apperr.Wrap(apperr.Unavailable, "Photo storage is not configured", errors.New("r2 disabled"))
}
