// Package services contains server-side business logic. This file implements
// AuthService, which handles signup and login against the credential store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/dbx"
	"github.com/dmitrijs2005/aqidash/internal/server/auth"
	"github.com/dmitrijs2005/aqidash/internal/server/config"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
	"github.com/dmitrijs2005/aqidash/internal/server/repositories/repomanager"
)

// AuthService provides credential operations:
// - Signup: validate the form and store a bcrypt hash
// - Login: verify a password against the stored hash
type AuthService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	hashCost     int
	strictSignup bool
}

// NewAuthService constructs an AuthService. db may be nil when the
// repository manager does not need a database.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:           db,
		repomanager:  m,
		hashCost:     cfg.PasswordHashCost,
		strictSignup: cfg.StrictSignup,
	}
}

// Signup registers email with password. Checks run in this order: all
// fields present, email not taken, passwords equal, then (strict mode only)
// email shape and password strength.
func (s *AuthService) Signup(ctx context.Context, email, password, confirmPassword string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || confirmPassword == "" {
		return nil, common.ErrMissingFormFields
	}

	var created *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrDuplicateEmail
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}

		if password != confirmPassword {
			return common.ErrPasswordMismatch
		}

		if s.strictSignup {
			if !auth.IsValidEmail(email) {
				return common.ErrInvalidEmail
			}
			if !auth.IsStrongPassword(password) {
				return common.ErrWeakPassword
			}
		}

		hash, err := auth.HashPassword(password, s.hashCost)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}

		created, err = repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrDuplicateEmail) {
				return err
			}
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Login returns the user when password matches the stored hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrMissingFormFields
	}

	repo := s.repomanager.Users(s.conn())
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownEmail
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return nil, common.ErrWrongPassword
	}

	return user, nil
}

// conn avoids handing a typed-nil *sql.DB to repositories.
func (s *AuthService) conn() dbx.DBTX {
	if s.db == nil {
		return nil
	}
	return s.db
}
