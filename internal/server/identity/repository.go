package identity

import "context"

// Repository owns the collection of registered identities.
//
// Create must perform the duplicate check and the insert as one atomic
// unit: two concurrent calls for the same email produce exactly one
// success and one common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, ident *Identity) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	Count(ctx context.Context) (int, error)
}
