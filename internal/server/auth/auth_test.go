package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub-domain.co.uk", true},
		{"user_1@host.io", true},
		{"", false},
		{"plainaddress", false},
		{"@x.com", false},
		{"a@x", false},
		{"a@x.", false},
		{"a b@x.com", false},
		{"a@x_y.com", false},
		{"a@@x.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.in), tt.in)
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Abc123!@", true},
		{"longpassword1?", true},
		{"Abc12!", false},        // too short
		{"abcdefgh!", false},     // no digit
		{"12345678!", false},     // no letter
		{"Abcdefg12", false},     // no symbol
		{"Abcdefg12-", false},    // '-' is not in the symbol set
		{"Ünïcödé1{xx", true},    // letters outside ASCII do not count, but 'x' does
		{"ÄÖÜÄÖÜ1{", false},      // only non-ASCII letters
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStrongPassword(tt.in), tt.in)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Abc123!@", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotContains(t, string(hash), "Abc123!@")

	ok, err := VerifyPassword("Abc123!@", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := HashPassword("Abc123!@", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestHashPassword_CostOutOfRangeUsesDefault(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("pw", []byte("not-a-hash"))
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("k")
	tok, err := GenerateToken("sess-1", secret, time.Minute)
	require.NoError(t, err)

	id, err := GetSessionIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}

func TestToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("sess-1", []byte("k1"), time.Minute)
	require.NoError(t, err)

	_, err = GetSessionIDFromToken(tok, []byte("k2"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestToken_Expired(t *testing.T) {
	tok, err := GenerateToken("sess-1", []byte("k"), -time.Minute)
	require.NoError(t, err)

	_, err = GetSessionIDFromToken(tok, []byte("k"))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired), "got %v", err)
}

func TestToken_Garbage(t *testing.T) {
	_, err := GetSessionIDFromToken("not.a.token", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestToken_EmptySessionID(t *testing.T) {
	tok, err := GenerateToken("", []byte("k"), time.Minute)
	require.NoError(t, err)

	_, err = GetSessionIDFromToken(tok, []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
