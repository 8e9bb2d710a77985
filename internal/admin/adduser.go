// Package admin implements the operator command line: registering dashboard
// users directly in the PostgreSQL credential store.
package admin

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/aqidash/internal/server/models"
)

// Registrar creates accounts with the same rules as the web signup form.
type Registrar interface {
	Signup(ctx context.Context, email, password, confirmPassword string) (*models.User, error)
}

// AddUser asks for an email and a password (twice) and registers the user.
func AddUser(ctx context.Context, reader *bufio.Reader, w io.Writer, reg Registrar) error {
	email, err := GetSimpleText(reader, "Enter user name (email)", w)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password: ", w)
	if err != nil {
		return err
	}
	defer wipe(password)

	confirm, err := GetPassword("Confirm password: ", w)
	if err != nil {
		return err
	}
	defer wipe(confirm)

	u, err := reg.Signup(ctx, email, string(password), string(confirm))
	if err != nil {
		return fmt.Errorf("adduser: %w", err)
	}

	fmt.Fprintf(w, "User %s added\n", u.Email)
	return nil
}
