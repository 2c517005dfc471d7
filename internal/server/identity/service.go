// Package identity implements the credential store: registration,
// lookup, and the login flow that exchanges credentials for an access
// token.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/authgate/authgate/internal/common"
	"github.com/authgate/authgate/internal/server/auth"
	"github.com/authgate/authgate/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo      Repository
	authority *auth.Authority
	cost      int

	// dummyHash is compared against on login for unknown emails so the
	// two rejection paths cost roughly the same.
	dummyHash []byte
}

func NewService(repo Repository, authority *auth.Authority, cfg *config.Config) (*Service, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("authgate-dummy-secret"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}

	return &Service{
		repo:      repo,
		authority: authority,
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
	}, nil
}

// normalizeEmail defines the store's case policy: emails are lower-cased
// once here, so registration and lookup always agree.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new identity. All three fields are required; the
// secret is stored only as a bcrypt digest. A duplicate email surfaces
// common.ErrorAlreadyExists and leaves the store unchanged.
func (s *Service) Register(ctx context.Context, email, displayName, secret string) (*Identity, error) {
	email = normalizeEmail(email)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name is required", common.ErrorValidation)
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: secret is required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	ident, err := s.repo.Create(ctx, &Identity{
		Email:       email,
		DisplayName: displayName,
		SecretHash:  hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating identity: %w", err)
	}

	return ident, nil
}

// FindByEmail is a pure lookup with no side effects.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// Login verifies the presented credentials and, on match, returns a
// freshly issued access token. Unknown email and wrong secret both
// return common.ErrorUnauthorized with no distinguishable signal.
func (s *Service) Login(ctx context.Context, email, secret string) (string, error) {
	ident, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn a comparison so the miss costs as much as a mismatch.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(secret))
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(ident.SecretHash, []byte(secret)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := s.authority.Issue(ident.ID, ident.Email)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
