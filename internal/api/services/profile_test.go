package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/dealls/internal/api/validation"
	"github.com/rohits-web03/dealls/internal/apperr"
	"github.com/rohits-web03/dealls/internal/models"
)

type fakePhotos struct {
	objects map[string]bool
}

func (f *fakePhotos) PresignPut(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	return "https://upload.example/" + key + "?ct=" + contentType, nil
}

func (f *fakePhotos) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://download.example/" + key, nil
}

func (f *fakePhotos) Exists(_ context.Context, key string) (bool, error) {
	return f.objects[key], nil
}

func TestProfile_Get(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "viewer", func(u *models.User) {
		u.IsPremium = true
		u.PremiumFeatures.VerifiedLabel = true
	})
	svc := NewProfileService(f.store, nil, validation.New(), storeTimeout)

	p, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "viewer", p.Username)
	assert.True(t, p.IsVerified)
	assert.Empty(t, p.PhotoURL)

	_, err = svc.Get(context.Background(), uuid.New())
	requireKind(t, err, apperr.NotFound)
}

func TestProfile_PhotoFlow(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "photogenic")
	photos := &fakePhotos{objects: map[string]bool{}}
	svc := NewProfileService(f.store, photos, validation.New(), storeTimeout)
	ctx := context.Background()

	up, err := svc.PresignPhoto(ctx, u.ID, PhotoUploadInput{ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.Key, "profiles/"+u.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(up.Key, ".png"))
	assert.Equal(t, "15m0s", up.ExpiresIn)

	_, err = svc.CompletePhoto(ctx, u.ID, PhotoCompleteInput{Key: up.Key})
	requireKind(t, err, apperr.NotFound)

	photos.objects[up.Key] = true
	p, err := svc.CompletePhoto(ctx, u.ID, PhotoCompleteInput{Key: up.Key})
	require.NoError(t, err)
	assert.Equal(t, "https://download.example/"+up.Key, p.PhotoURL)
}

func TestProfile_PhotoRejections(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "careful")
	svc := NewProfileService(f.store, &fakePhotos{}, validation.New(), storeTimeout)
	ctx := context.Background()

	_, err := svc.PresignPhoto(ctx, u.ID, PhotoUploadInput{ContentType: "image/gif"})
	requireKind(t, err, apperr.Validation)

	_, err = svc.CompletePhoto(ctx, u.ID, PhotoCompleteInput{Key: "profiles/" + uuid.NewString() + "/x.png"})
	requireKind(t, err, apperr.Validation)

	disabled := NewProfileService(f.store, nil, validation.New(), storeTimeout)
	_, err = disabled.PresignPhoto(ctx, u.ID, PhotoUploadInput{ContentType: "image/png"})
	requireKind(t, err, apperr.Unavailable)
}
