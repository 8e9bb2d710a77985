package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
)

// MemoryRepository keeps users in a map for the life of the process.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	stored.PasswordHash = append([]byte(nil), user.PasswordHash...)
	r.users[user.Email] = stored

	return user, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &u, nil
}
