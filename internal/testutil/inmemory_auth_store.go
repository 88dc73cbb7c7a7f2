package testutil

import (
	"context"
	"sync"

	"github.com/buildline/buildline/internal/domain/auth"
	ierr "github.com/buildline/buildline/internal/errors"
)

// InMemoryAuthRepository is an in-memory implementation of the auth.Repository interface
type InMemoryAuthRepository struct {
	mu    sync.Mutex
	auths map[string]*auth.Auth
}

func NewInMemoryAuthRepository() *InMemoryAuthRepository {
	return &InMemoryAuthRepository{
		auths: make(map[string]*auth.Auth),
	}
}

func (r *InMemoryAuthRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.auths[a.UserID]; exists {
		return ierr.NewError("auth record already exists").
			WithHint("Authentication record already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	c := *a
	r.auths[a.UserID] = &c
	return nil
}

func (r *InMemoryAuthRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.auths[a.UserID]; !exists {
		return ierr.NewError("auth record not found").
			WithHint("Authentication record not found").
			WithReportableDetails(map[string]interface{}{
				"user_id": a.UserID,
			}).
			Mark(ierr.ErrNotFound)
	}
	c := *a
	r.auths[a.UserID] = &c
	return nil
}

func (r *InMemoryAuthRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.auths[userID]
	if !exists {
		return nil, ierr.NewError("auth record not found").
			WithHint("Authentication record not found").
			Mark(ierr.ErrNotFound)
	}
	c := *a
	return &c, nil
}

func (r *InMemoryAuthRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auths = make(map[string]*auth.Auth)
}
