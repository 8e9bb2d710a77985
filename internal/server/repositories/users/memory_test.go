package users

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	u, err := r.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: []byte("h1")})
	require.NoError(t, err)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("h1"), got.PasswordHash)

	// callers cannot mutate the stored record through returned values
	got.PasswordHash[0] = 'X'
	again, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("h1"), again.PasswordHash)
}

func TestMemoryRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	_, err := r.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: []byte("h1")})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: []byte("h2")})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	got, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("h1"), got.PasswordHash, "first record is never overwritten")
}

func TestMemoryRepository_NotFound(t *testing.T) {
	_, err := NewMemoryRepository().GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n*2)
	for i := 0; i < n; i++ {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := r.Create(ctx, &models.User{Email: fmt.Sprintf("u%d@x.com", i), PasswordHash: []byte("h")})
				errs <- err
			}(i)
		}
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, common.ErrDuplicateEmail):
			dup++
		}
	}
	assert.Equal(t, n, ok)
	assert.Equal(t, n, dup)
}
