package identity

import (
	"context"
	"testing"
	"time"

	"github.com/authgate/authgate/internal/common"
	"github.com/authgate/authgate/internal/server/auth"
	"github.com/authgate/authgate/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, lifetime time.Duration) (*Service, *MemoryRepository, *auth.Authority) {
	t.Helper()

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: lifetime,
		BcryptCost:            bcrypt.MinCost, // keep the tests fast
	}

	repo := NewMemoryRepository()
	authority := auth.NewAuthority([]byte(cfg.SecretKey), cfg.TokenValidityDuration)

	svc, err := NewService(repo, authority, cfg)
	require.NoError(t, err)
	return svc, repo, authority
}

func TestService_RegisterThenFind(t *testing.T) {
	svc, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	ident, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ident.ID)
	assert.Equal(t, "alice@example.com", ident.Email)
	assert.Equal(t, "Alice", ident.DisplayName)

	found, err := svc.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, ident.ID, found.ID)
	assert.Equal(t, "alice@example.com", found.Email)
}

func TestService_Register_SecretIsHashed(t *testing.T) {
	svc, _, _ := newTestService(t, time.Hour)

	ident, err := svc.Register(context.Background(), "h@example.com", "H", "cleartext")
	require.NoError(t, err)

	assert.NotEqual(t, []byte("cleartext"), ident.SecretHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(ident.SecretHash, []byte("cleartext")))
}

func TestService_Register_Validation(t *testing.T) {
	svc, repo, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name        string
		email       string
		displayName string
		secret      string
	}{
		{"empty email", "", "Name", "pw"},
		{"empty display name", "a@example.com", "", "pw"},
		{"empty secret", "a@example.com", "Name", ""},
		{"whitespace email", "   ", "Name", "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.displayName, tt.secret)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "failed registrations must not alter store state")
}

func TestService_Register_Duplicate(t *testing.T) {
	svc, repo, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "First", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "Second", "pw2")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "store must grow by exactly one")
}

func TestService_Register_EmailCaseNormalized(t *testing.T) {
	svc, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "MiXeD@Example.COM", "Mixed", "pw")
	require.NoError(t, err)

	// Same address in a different case is a duplicate, not a new identity.
	_, err = svc.Register(ctx, "mixed@example.com", "Lower", "pw")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	// And login matches regardless of presented case.
	_, err = svc.Login(ctx, "MIXED@EXAMPLE.COM", "pw")
	assert.NoError(t, err)
}

func TestService_Login_Success(t *testing.T) {
	svc, _, authority := newTestService(t, time.Hour)
	ctx := context.Background()

	ident, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authority.Verify(token)
	require.NoError(t, err)

	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, ident.ID, id)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestService_Login_UniformRejection(t *testing.T) {
	svc, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret")
	require.NoError(t, err)

	_, wrongSecretErr := svc.Login(ctx, "alice@example.com", "wrong")
	_, unknownEmailErr := svc.Login(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, wrongSecretErr, common.ErrorUnauthorized)
	assert.ErrorIs(t, unknownEmailErr, common.ErrorUnauthorized)
	// Equal sentinel, no distinguishable signal between the two paths.
	assert.Equal(t, wrongSecretErr, unknownEmailErr)
}

func TestService_Scenario_Alice(t *testing.T) {
	svc, _, authority := newTestService(t, time.Hour)
	ctx := context.Background()

	ident, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ident.ID)

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	claims, err := authority.Verify(token)
	require.NoError(t, err)
	id, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_Login_TokenExpiresWithZeroLifetime(t *testing.T) {
	svc, _, authority := newTestService(t, -1*time.Second)
	ctx := context.Background()

	_, err := svc.Register(ctx, "exp@example.com", "Exp", "pw")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "exp@example.com", "pw")
	require.NoError(t, err)

	_, err = authority.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}
