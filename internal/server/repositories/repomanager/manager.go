// Package repomanager vends repository implementations for the configured
// storage backend.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aqidash/internal/dbx"
	"github.com/dmitrijs2005/aqidash/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
