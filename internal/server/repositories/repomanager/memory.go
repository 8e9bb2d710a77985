package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aqidash/internal/dbx"
	"github.com/dmitrijs2005/aqidash/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out one process-wide in-memory users
// repository. The db argument is ignored and may be nil.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

// RunMigrations is a no-op: there is no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}
