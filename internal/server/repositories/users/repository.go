// Package users is the credential store: a small repository interface with
// in-memory and PostgreSQL implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/aqidash/internal/server/models"
)

// Repository stores credential records keyed by email.
//
// Create fails with common.ErrDuplicateEmail when the email is taken.
// GetByEmail fails with common.ErrorNotFound when it is absent.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
