package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "dealls_test_jwt_secret_key_1234567890"

func TestToken_IssueAndVerify(t *testing.T) {
	t.Parallel()
	svc := NewTokenService(testSecret, time.Hour)
	id := uuid.New()

	tok, err := svc.Issue(id, "user@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestToken_Expired(t *testing.T) {
	t.Parallel()
	svc := NewTokenService(testSecret, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := svc.Issue(uuid.New(), "user@example.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestToken_WrongSecret(t *testing.T) {
	t.Parallel()
	tok, err := NewTokenService(testSecret, time.Hour).Issue(uuid.New(), "a@b.co")
	require.NoError(t, err)

	_, err = NewTokenService("another_secret_that_is_long_enough_!!", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestToken_Malformed(t *testing.T) {
	t.Parallel()
	_, err := NewTokenService(testSecret, time.Hour).Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	id := uuid.New().String()
	claims := Claims{
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHasher(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(4)

	hash, err := h.Hash("Passw0rd!")
	require.NoError(t, err)

	ok, err := h.Verify(hash, "Passw0rd!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify("not-a-hash", "Passw0rd!")
	assert.Error(t, err)
}
