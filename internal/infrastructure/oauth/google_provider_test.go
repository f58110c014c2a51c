package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/pkg/config"
)

func testConfig() config.OAuthConfig {
	return config.OAuthConfig{
		GoogleClientID:     "client",
		GoogleClientSecret: "secret",
		GoogleRedirectURL:  "http://localhost/cb",
	}
}

func TestNewGoogleProvider_DisabledWithoutCredentials(t *testing.T) {
	assert.Nil(t, NewGoogleProvider(config.OAuthConfig{}))
}

func TestAuthCodeURL(t *testing.T) {
	p := NewGoogleProvider(testConfig())
	require.NotNil(t, p)

	u, err := url.Parse(p.AuthCodeURL("abc"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "abc", q.Get("state"))
	assert.Equal(t, "client", q.Get("client_id"))
	assert.Equal(t, "http://localhost/cb", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "email")
}

func TestExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"email":"ana@example.com","email_verified":true,"name":"Ana"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewGoogleProvider(testConfig()).WithEndpoints(srv.URL+"/auth", srv.URL+"/token", srv.URL+"/userinfo")

	ident, err := p.Exchange(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", ident.Email)
	assert.Equal(t, "Ana", ident.Name)
	assert.True(t, ident.EmailVerified)

	_, err = p.Exchange(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
