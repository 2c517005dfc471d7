package identity

import "time"

// Identity is one registered user record, keyed by email. SecretHash is
// the bcrypt digest of the login secret; the cleartext secret is never
// stored.
type Identity struct {
	ID          int64
	Email       string
	DisplayName string
	SecretHash  []byte
	CreatedAt   time.Time
}
