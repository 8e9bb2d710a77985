package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "5", "-m", "10", "-k", "4",
			"-x", "data.csv", "-i", "bg.png", "-v", "http://viz", "-r", "replies.yaml", "-l", "zap",
			"-u", "user", "-p", "password", "-g", "us-west-1", "-e", "http://endpoint", "-strict",
		}, expected: &Config{
			EndpointAddrHTTP:        "127.0.0.1:9090",
			DatabaseDSN:             "db",
			SecretKey:               "secret",
			SessionValidityDuration: 5 * time.Minute,
			MaxSessions:             10,
			PasswordHashCost:        4,
			StrictSignup:            true,
			DatasetPath:             "data.csv",
			BackgroundImagePath:     "bg.png",
			EmbedURL:                "http://viz",
			ChatRepliesPath:         "replies.yaml",
			LogFormat:               "zap",
			S3RootUser:              "user",
			S3RootPassword:          "password",
			S3Region:                "us-west-1",
			S3BaseEndpoint:          "http://endpoint",
		}},
		{name: "no flags keeps values", args: []string{"cmd", "-c", "ignored.json"},
			expected: &Config{SessionValidityDuration: 90 * time.Second, MaxSessions: 3}},
		{name: "bad int panics", args: []string{"cmd", "-m", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{SessionValidityDuration: 90 * time.Second, MaxSessions: 3}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
