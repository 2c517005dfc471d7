// Package auth implements the token authority: it converts a successful
// login into a signed, time-bounded access token and converts a presented
// token back into a trusted claim set.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/authgate/authgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the set of facts embedded in an access token: the standard
// registered claims (subject, issued-at, expiry) plus the identity's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// SubjectID returns the identity ID carried in the subject claim.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrMalformedToken
	}
	return id, nil
}

// Authority signs and verifies access tokens with a symmetric secret that
// is fixed for the process lifetime. Issue and Verify are pure functions
// of their inputs plus the secret and are safe for concurrent use.
type Authority struct {
	secret   []byte
	lifetime time.Duration
}

func NewAuthority(secret []byte, lifetime time.Duration) *Authority {
	return &Authority{secret: secret, lifetime: lifetime}
}

// Issue builds and signs a token for the identity with the given id and
// email. Expiry is issue time plus the configured lifetime.
func (a *Authority) Issue(id int64, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.lifetime)),
		},
		Email: email,
	})

	return token.SignedString(a.secret)
}

// Verify parses and validates a presented token. Failures are reported as
// one of the sentinel kinds in package common: ErrMalformedToken for
// anything that does not decode into a three-part token with the expected
// claims, ErrInvalidSignature for a signature mismatch (including tokens
// signed with a rotated or foreign secret), and ErrTokenExpired when the
// expiry has passed.
func (a *Authority) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidSignature
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, classifyVerifyError(err)
	}
	if !token.Valid {
		return nil, common.ErrMalformedToken
	}

	return claims, nil
}

func classifyVerifyError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, common.ErrInvalidSignature):
		return common.ErrInvalidSignature
	default:
		return common.ErrMalformedToken
	}
}
