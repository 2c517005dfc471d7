package identity

import (
	"context"
	"sync"
	"time"

	"github.com/authgate/authgate/internal/common"
)

// MemoryRepository is the in-process Repository implementation. IDs are
// allocated sequentially starting from 1. All mutations run under a
// single write lock, so readers never observe a half-inserted identity.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*Identity
	nextID  int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byEmail: make(map[string]*Identity),
		nextID:  1,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, ident *Identity) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[ident.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := *ident
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++
	r.byEmail[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ident, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	// Callers get a copy so the stored record stays immutable.
	out := *ident
	return &out, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byEmail), nil
}
