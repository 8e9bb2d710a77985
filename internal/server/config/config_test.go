package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8501", c.EndpointAddrHTTP)
	assert.Empty(t, c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, 1024, c.MaxSessions)
	assert.Equal(t, bcrypt.DefaultCost, c.PasswordHashCost)
	assert.False(t, c.StrictSignup)
	assert.Equal(t, "InfosysDataset-NEW.xlsx", c.DatasetPath)
	assert.Equal(t, "pexels.jpg", c.BackgroundImagePath)
	assert.Equal(t, DefaultEmbedURL, c.EmbedURL)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "us-east-1", c.S3Region)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	origDotenv := dotenvFile
	t.Cleanup(func() { dotenvFile = origDotenv })
	dotenvFile = "does-not-exist.env"

	t.Setenv("AQIDASH_CONFIG", "")
	for _, ev := range envVars {
		t.Setenv(ev.name, "")
	}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	origDotenv := dotenvFile
	t.Cleanup(func() { dotenvFile = origDotenv })
	dotenvFile = "does-not-exist.env"

	for _, ev := range envVars {
		t.Setenv(ev.name, "")
	}

	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http": ":1000",
		"dataset_path":       "json.csv",
		"log_format":         "text",
	})
	t.Setenv("AQIDASH_CONFIG", "")
	t.Setenv("AQIDASH_DATASET_PATH", "env.csv")
	t.Setenv("AQIDASH_LOG_FORMAT", "zap")

	os.Args = []string{"testbin", "-c", path, "-l", "json"}

	c := LoadConfig()

	assert.Equal(t, ":1000", c.EndpointAddrHTTP, "json beats defaults")
	assert.Equal(t, "env.csv", c.DatasetPath, "env beats json")
	assert.Equal(t, "json", c.LogFormat, "flags beat env")
}

func TestLoadConfig_NonPositiveLimitsFallBack(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-t", "0"}

	origDotenv := dotenvFile
	t.Cleanup(func() { dotenvFile = origDotenv })
	dotenvFile = "does-not-exist.env"

	t.Setenv("AQIDASH_CONFIG", "")
	for _, ev := range envVars {
		t.Setenv(ev.name, "")
	}
	t.Setenv("AQIDASH_MAX_SESSIONS", "-5")

	c := LoadConfig()

	assert.Equal(t, 30*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, 1024, c.MaxSessions)
}

func TestApplyLimits(t *testing.T) {
	c := Config{SessionValidityDuration: -time.Second, MaxSessions: 0, PasswordHashCost: 99}
	c.applyLimits()

	assert.Equal(t, 30*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, 1024, c.MaxSessions)
	assert.Equal(t, bcrypt.DefaultCost, c.PasswordHashCost)

	c = Config{SessionValidityDuration: time.Minute, MaxSessions: 3, PasswordHashCost: bcrypt.MinCost}
	c.applyLimits()
	assert.Equal(t, time.Minute, c.SessionValidityDuration)
	assert.Equal(t, 3, c.MaxSessions)
	assert.Equal(t, bcrypt.MinCost, c.PasswordHashCost)
}
