package repositories

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/dealls/internal/config"
)

func testR2() *PhotoStorage {
	return NewR2PhotoStorage(config.R2Config{
		AccountID:       "acc123",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		BucketName:      "photos",
		Region:          "auto",
	})
}

func TestPhotoStorage_PresignPut(t *testing.T) {
	raw, err := testR2().PresignPut(context.Background(), "profiles/u1/a.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "acc123.r2.cloudflarestorage.com", u.Host)
	assert.Equal(t, "/photos/profiles/u1/a.png", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPhotoStorage_PresignGet(t *testing.T) {
	raw, err := testR2().PresignGet(context.Background(), "profiles/u1/a.png", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/photos/profiles/u1/a.png", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}
