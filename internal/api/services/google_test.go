package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/rohits-web03/dealls/internal/config"
)

func newGoogleServer(t *testing.T, user GoogleUser) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-" + r.FormValue("code"),
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-good-code" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(user)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testGoogle(srv *httptest.Server) *GoogleOAuth {
	g := NewGoogleOAuth(config.GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"})
	g.conf.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"
	return g
}

func TestGoogleOAuth_Exchange(t *testing.T) {
	srv := newGoogleServer(t, GoogleUser{ID: "1", Email: "ada@example.com", VerifiedEmail: true, Name: "Ada"})
	g := testGoogle(srv)

	u, err := g.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.Name)

	_, err = g.Exchange(context.Background(), "bad-code")
	require.Error(t, err)
}

func TestGoogleOAuth_UnverifiedEmail(t *testing.T) {
	srv := newGoogleServer(t, GoogleUser{ID: "1", Email: "ada@example.com"})
	g := testGoogle(srv)

	_, err := g.Exchange(context.Background(), "good-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not verified")
}

func TestGoogleOAuth_AuthCodeURL(t *testing.T) {
	g := NewGoogleOAuth(config.GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"})

	url := g.AuthCodeURL("state-123")
	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "state=state-123")
	assert.Contains(t, url, "client_id=id")
}
