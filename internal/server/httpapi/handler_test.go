package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/authgate/authgate/internal/logging"
	"github.com/authgate/authgate/internal/server/auth"
	"github.com/authgate/authgate/internal/server/config"
	"github.com/authgate/authgate/internal/server/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

func newTestServer(t *testing.T, lifetime time.Duration) (*Server, *auth.Authority) {
	t.Helper()

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: lifetime,
		BcryptCost:            bcrypt.MinCost,
	}

	authority := auth.NewAuthority([]byte(cfg.SecretKey), cfg.TokenValidityDuration)
	svc, err := identity.NewService(identity.NewMemoryRepository(), authority, cfg)
	require.NoError(t, err)

	return NewServer(":0", nopLogger{}, svc, authority), authority
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	s, _ := newTestServer(t, time.Hour)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/register", "", registerRequest{
		Email: "alice@example.com", DisplayName: "Alice", Secret: "s3cret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp registerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "Alice", resp.DisplayName)
}

func TestRegister_ValidationAndDuplicate(t *testing.T) {
	s, _ := newTestServer(t, time.Hour)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/register", "", registerRequest{
		Email: "", DisplayName: "X", Secret: "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/register", "", registerRequest{
		Email: "dup@example.com", DisplayName: "First", Secret: "pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/register", "", registerRequest{
		Email: "dup@example.com", DisplayName: "Second", Secret: "pw",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	s, _ := newTestServer(t, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndProfile_Flow(t *testing.T) {
	s, _ := newTestServer(t, time.Hour)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/register", "", registerRequest{
		Email: "alice@example.com", DisplayName: "Alice", Secret: "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/login", "", loginRequest{
		Email: "alice@example.com", Secret: "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var lr loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lr))
	require.NotEmpty(t, lr.Token)

	w = doJSON(t, h, http.MethodGet, "/api/profile", lr.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pr profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pr))
	assert.Equal(t, int64(1), pr.ID)
	assert.Equal(t, "alice@example.com", pr.Email)
	assert.True(t, pr.ExpiresAt.After(time.Now()))
}

func TestUnauthenticated_OneIndistinguishableShape(t *testing.T) {
	s, _ := newTestServer(t, time.Hour)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/api/register", "", registerRequest{
		Email: "alice@example.com", DisplayName: "Alice", Secret: "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	foreign := auth.NewAuthority([]byte("other-secret"), time.Hour)
	foreignToken, err := foreign.Issue(1, "alice@example.com")
	require.NoError(t, err)

	expired := auth.NewAuthority([]byte("test-secret"), -1*time.Minute)
	expiredToken, err := expired.Issue(1, "alice@example.com")
	require.NoError(t, err)

	rejections := map[string]*httptest.ResponseRecorder{
		"missing token":  doJSON(t, h, http.MethodGet, "/api/profile", "", nil),
		"garbage token":  doJSON(t, h, http.MethodGet, "/api/profile", "not.a.jwt", nil),
		"foreign secret": doJSON(t, h, http.MethodGet, "/api/profile", foreignToken, nil),
		"expired token":  doJSON(t, h, http.MethodGet, "/api/profile", expiredToken, nil),
		"wrong secret":   doJSON(t, h, http.MethodPost, "/api/login", "", loginRequest{Email: "alice@example.com", Secret: "wrong"}),
		"unknown email":  doJSON(t, h, http.MethodPost, "/api/login", "", loginRequest{Email: "nobody@example.com", Secret: "s3cret"}),
	}

	var wantBody string
	for name, w := range rejections {
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "case %q", name)
		if wantBody == "" {
			wantBody = w.Body.String()
			continue
		}
		assert.Equalf(t, wantBody, w.Body.String(), "case %q must be indistinguishable", name)
	}
}
