package admin

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/dmitrijs2005/aqidash/internal/server/config"
	"github.com/dmitrijs2005/aqidash/internal/server/models"
	"github.com/dmitrijs2005/aqidash/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubPasswords makes readPassword return the given values in order.
func stubPasswords(t *testing.T, values ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(fd int) ([]byte, error) {
		if len(values) == 0 {
			return nil, errors.New("no more input")
		}
		v := values[0]
		values = values[1:]
		return []byte(v), nil
	}
}

type recordingRegistrar struct {
	email, password, confirm string
	err                      error
}

func (r *recordingRegistrar) Signup(ctx context.Context, email, password, confirm string) (*models.User, error) {
	r.email, r.password, r.confirm = email, password, confirm
	if r.err != nil {
		return nil, r.err
	}
	return &models.User{Email: email}, nil
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	s, err := GetSimpleText(bufio.NewReader(strings.NewReader("  a@b.com \n")), "Email", &out)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", s)
	assert.Equal(t, "Email\n> ", out.String())

	s, err = GetSimpleText(bufio.NewReader(strings.NewReader("partial")), "Email", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", s)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Email", &out)
	assert.Error(t, err)
}

func TestAddUser(t *testing.T) {
	stubPasswords(t, "pw-1", "pw-1")
	reg := &recordingRegistrar{}
	var out bytes.Buffer

	err := AddUser(context.Background(), bufio.NewReader(strings.NewReader("a@b.com\n")), &out, reg)
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", reg.email)
	assert.Equal(t, "pw-1", reg.password)
	assert.Equal(t, "pw-1", reg.confirm)
	assert.Contains(t, out.String(), "User a@b.com added")
}

func TestAddUser_SignupError(t *testing.T) {
	stubPasswords(t, "one", "two")
	reg := &recordingRegistrar{err: common.ErrPasswordMismatch}

	err := AddUser(context.Background(), bufio.NewReader(strings.NewReader("a@b.com\n")), &bytes.Buffer{}, reg)
	assert.ErrorIs(t, err, common.ErrPasswordMismatch)
}

func TestAddUser_PasswordReadError(t *testing.T) {
	stubPasswords(t, "only-one")

	err := AddUser(context.Background(), bufio.NewReader(strings.NewReader("a@b.com\n")), &bytes.Buffer{}, &recordingRegistrar{})
	assert.Error(t, err)
}

func stubOpen(t *testing.T, m repomanager.RepositoryManager, err error) *string {
	t.Helper()
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })

	var dsn string
	openPostgres = func(ctx context.Context, d string) (*sql.DB, repomanager.RepositoryManager, error) {
		dsn = d
		return nil, m, err
	}
	return &dsn
}

func newCfg() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.PasswordHashCost = bcrypt.MinCost
	return c
}

func TestRootCmd_AddUser(t *testing.T) {
	m := repomanager.NewMemoryRepositoryManager()
	dsn := stubOpen(t, m, nil)
	stubPasswords(t, "secret", "secret")

	var out bytes.Buffer
	cmd := NewRootCmd(newCfg(), strings.NewReader("admin@b.com\n"), &out)
	cmd.SetArgs([]string{"adduser", "-d", "postgres://db/aqi", "-k", "4"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "postgres://db/aqi", *dsn)

	u, err := m.Users(nil).GetByEmail(context.Background(), "admin@b.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("secret")))
}

func TestRootCmd_AddUserStrict(t *testing.T) {
	stubOpen(t, repomanager.NewMemoryRepositoryManager(), nil)
	stubPasswords(t, "weak", "weak")

	cmd := NewRootCmd(newCfg(), strings.NewReader("admin@b.com\n"), &bytes.Buffer{})
	cmd.SetArgs([]string{"adduser", "-d", "postgres://db/aqi", "--strict"})

	assert.ErrorIs(t, cmd.ExecuteContext(context.Background()), common.ErrWeakPassword)
}

func TestRootCmd_AddUserNeedsDSN(t *testing.T) {
	cmd := NewRootCmd(newCfg(), strings.NewReader(""), &bytes.Buffer{})
	cmd.SetArgs([]string{"adduser"})

	assert.ErrorIs(t, cmd.ExecuteContext(context.Background()), errNoDSN)
}

func TestRootCmd_OpenError(t *testing.T) {
	boom := errors.New("connection refused")
	stubOpen(t, nil, boom)

	cmd := NewRootCmd(newCfg(), strings.NewReader(""), &bytes.Buffer{})
	cmd.SetArgs([]string{"adduser", "--dsn", "postgres://db/aqi"})

	assert.ErrorIs(t, cmd.ExecuteContext(context.Background()), boom)
}

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd(newCfg(), strings.NewReader(""), &out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Build version:")
}
