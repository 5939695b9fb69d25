package meli

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marroking/internal/config"
)

func oauthConfig(baseURL string) *config.Config {
	return &config.Config{
		MeliAPIURL:       baseURL,
		MeliClientID:     "client-1",
		MeliClientSecret: "secret-1",
		MeliRedirectURI:  "https://example.com/auth/callback",
	}
}

func TestExchangeCodeForToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-1", r.PostForm.Get("client_secret"))
		assert.Equal(t, "code-abc", r.PostForm.Get("code"))
		assert.Equal(t, "https://example.com/auth/callback", r.PostForm.Get("redirect_uri"))

		fmt.Fprint(w, `{"access_token":"APP_USR-token","token_type":"bearer","user_id":555}`)
	}))
	defer server.Close()

	svc := NewOAuthService(oauthConfig(server.URL), testLogger())
	resp, err := svc.ExchangeCodeForToken(context.Background(), "code-abc")
	require.NoError(t, err)

	assert.Equal(t, "APP_USR-token", resp.AccessToken)
	assert.Equal(t, int64(555), resp.UserID)
}

func TestExchangeCodeForTokenMissingTokenIsError(t *testing.T) {
	// The remote API answers 200 with an error body; absence of the token
	// field is the failure signal, not the HTTP status.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"invalid_grant","message":"code expired"}`)
	}))
	defer server.Close()

	svc := NewOAuthService(oauthConfig(server.URL), testLogger())
	_, err := svc.ExchangeCodeForToken(context.Background(), "code-abc")
	require.ErrorIs(t, err, ErrAuthExchange)
	assert.Contains(t, err.Error(), "code expired")
}
