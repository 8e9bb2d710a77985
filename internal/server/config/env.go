package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFile is loaded into the process environment before AQIDASH_*
// variables are read. Variables already set win over the file.
var dotenvFile = ".env"

type envVar struct {
	name  string
	apply func(c *Config, v string) error
}

var envVars = []envVar{
	{"AQIDASH_ADDR", func(c *Config, v string) error { c.EndpointAddrHTTP = v; return nil }},
	{"AQIDASH_DATABASE_DSN", func(c *Config, v string) error { c.DatabaseDSN = v; return nil }},
	{"AQIDASH_SECRET_KEY", func(c *Config, v string) error { c.SecretKey = v; return nil }},
	{"AQIDASH_SESSION_VALIDITY", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		c.SessionValidityDuration = d
		return err
	}},
	{"AQIDASH_MAX_SESSIONS", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.MaxSessions = n
		return err
	}},
	{"AQIDASH_PASSWORD_HASH_COST", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.PasswordHashCost = n
		return err
	}},
	{"AQIDASH_STRICT_SIGNUP", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.StrictSignup = b
		return err
	}},
	{"AQIDASH_DATASET_PATH", func(c *Config, v string) error { c.DatasetPath = v; return nil }},
	{"AQIDASH_BACKGROUND_IMAGE", func(c *Config, v string) error { c.BackgroundImagePath = v; return nil }},
	{"AQIDASH_EMBED_URL", func(c *Config, v string) error { c.EmbedURL = v; return nil }},
	{"AQIDASH_CHAT_REPLIES", func(c *Config, v string) error { c.ChatRepliesPath = v; return nil }},
	{"AQIDASH_LOG_FORMAT", func(c *Config, v string) error { c.LogFormat = v; return nil }},
	{"AQIDASH_S3_ROOT_USER", func(c *Config, v string) error { c.S3RootUser = v; return nil }},
	{"AQIDASH_S3_ROOT_PASSWORD", func(c *Config, v string) error { c.S3RootPassword = v; return nil }},
	{"AQIDASH_S3_REGION", func(c *Config, v string) error { c.S3Region = v; return nil }},
	{"AQIDASH_S3_BASE_ENDPOINT", func(c *Config, v string) error { c.S3BaseEndpoint = v; return nil }},
}

// parseEnv overlays AQIDASH_* environment variables onto config. A missing
// .env file is fine; an unparsable one or a malformed value panics, the same
// way a broken JSON config does.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load %s: %w", dotenvFile, err))
	}

	for _, ev := range envVars {
		v, ok := os.LookupEnv(ev.name)
		if !ok || v == "" {
			continue
		}
		if err := ev.apply(config, v); err != nil {
			panic(fmt.Errorf("%s: %w", ev.name, err))
		}
	}
}
