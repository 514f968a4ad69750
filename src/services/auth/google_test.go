package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeGoogle serves the token and userinfo endpoints.
func fakeGoogle(t *testing.T, email string, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(GoogleUserInfo{ID: "g-1", Email: email, VerifiedEmail: verified})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGoogleLogin(t *testing.T, srv *httptest.Server) *GoogleLogin {
	utils.SetJWTSecret("test-secret")
	g := NewGoogleLogin(NewService(newFixture(t), nil, time.Hour), GoogleOptions{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/auth/google/callback",
	})
	g.conf.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"
	return g
}

func TestGoogleLoginKnownAccount(t *testing.T) {
	g := newGoogleLogin(t, fakeGoogle(t, "Teacher@Example.com", true))

	res, err := g.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, models.KindTeacher, res.Principal.Kind)
	assert.Equal(t, "Kru Malee", res.Name)
	assert.NotEmpty(t, res.Token)
}

func TestGoogleLoginRejections(t *testing.T) {
	ctx := context.Background()

	g := newGoogleLogin(t, fakeGoogle(t, "stranger@example.com", true))
	_, err := g.Exchange(ctx, "good-code")
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = g.Exchange(ctx, "bad-code")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))

	_, err = g.Exchange(ctx, "")
	assert.Equal(t, utils.KindBadRequest, utils.KindOf(err))

	g = newGoogleLogin(t, fakeGoogle(t, "teacher@example.com", false))
	_, err = g.Exchange(ctx, "good-code")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
}

func TestGoogleAuthCodeURLCarriesState(t *testing.T) {
	g := newGoogleLogin(t, fakeGoogle(t, "x@example.com", true))
	u := g.AuthCodeURL("abc123")
	assert.Contains(t, u, "state=abc123")
	assert.Contains(t, u, "client_id=client")
}
