// Package config handles configuration for the dashboard server,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultEmbedURL is the published air pollution report shown on the main screen.
const DefaultEmbedURL = "https://app.powerbi.com/view?r=eyJrIjoiMGM3OWQxZTYtNTQxZS00YjM3LWFiZDktMzQwNWE3NDljZmIxIiwidCI6Ijg0MzlkMTkyLWY0NjQtNDFiYi05NDNiLWMzOTYzODI0NThiNCJ9"

// Config holds runtime settings for the dashboard server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the web UI.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps credentials in memory.
//   - SecretKey: HMAC secret for signing session cookies (HS256). Empty means
//     a random key per process, which logs everyone out on restart.
//   - SessionValidityDuration: idle lifetime of a browser session.
//   - MaxSessions: number of sessions kept before the oldest are evicted.
//   - PasswordHashCost: bcrypt work factor.
//   - StrictSignup: reject malformed emails and weak passwords on signup.
//   - DatasetPath: spreadsheet (.xlsx/.csv) path or s3://bucket/key.
//   - BackgroundImagePath: optional page background image.
//   - EmbedURL: external report rendered in an iframe.
//   - ChatRepliesPath: optional YAML file replacing the built-in chatbot replies.
//   - LogFormat: json, text or zap.
//   - S3RootUser / S3RootPassword / S3Region / S3BaseEndpoint: object storage
//     settings used when DatasetPath is an s3:// URL.
type Config struct {
	EndpointAddrHTTP        string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	MaxSessions             int
	PasswordHashCost        int
	StrictSignup            bool
	DatasetPath             string
	BackgroundImagePath     string
	EmbedURL                string
	ChatRepliesPath         string
	LogFormat               string
	S3RootUser              string
	S3RootPassword          string
	S3Region                string
	S3BaseEndpoint          string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8501"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.SessionValidityDuration = 30 * time.Minute
	c.MaxSessions = 1024
	c.PasswordHashCost = bcrypt.DefaultCost
	c.StrictSignup = false
	c.DatasetPath = "InfosysDataset-NEW.xlsx"
	c.BackgroundImagePath = "pexels.jpg"
	c.EmbedURL = DefaultEmbedURL
	c.ChatRepliesPath = ""
	c.LogFormat = "json"
	c.S3Region = "us-east-1"
}

// applyLimits replaces values that would make the server unusable with
// their defaults. A non-positive session validity issues cookies that are
// already expired.
func (c *Config) applyLimits() {
	var d Config
	d.LoadDefaults()

	if c.SessionValidityDuration <= 0 {
		c.SessionValidityDuration = d.SessionValidityDuration
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = d.MaxSessions
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		c.PasswordHashCost = d.PasswordHashCost
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (and .env) and finally from
// command-line flags. Out-of-range durations and sizes fall back to defaults.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.applyLimits()
	return cfg
}
