package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/aqidash/internal/flagx"
	"github.com/dmitrijs2005/aqidash/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations are read
// with timex.Duration, so both "30m" and integer nanoseconds work. Absent
// fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	MaxSessions             int            `json:"max_sessions"`
	PasswordHashCost        int            `json:"password_hash_cost"`
	StrictSignup            *bool          `json:"strict_signup"`
	DatasetPath             string         `json:"dataset_path"`
	BackgroundImagePath     string         `json:"background_image_path"`
	EmbedURL                string         `json:"embed_url"`
	ChatRepliesPath         string         `json:"chat_replies_path"`
	LogFormat               string         `json:"log_format"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config (or AQIDASH_CONFIG) into
// config. No path means nothing to do; an unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration.Duration > 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.MaxSessions > 0 {
		config.MaxSessions = c.MaxSessions
	}
	if c.PasswordHashCost > 0 {
		config.PasswordHashCost = c.PasswordHashCost
	}
	if c.StrictSignup != nil {
		config.StrictSignup = *c.StrictSignup
	}
	setString(&config.DatasetPath, c.DatasetPath)
	setString(&config.BackgroundImagePath, c.BackgroundImagePath)
	setString(&config.EmbedURL, c.EmbedURL)
	setString(&config.ChatRepliesPath, c.ChatRepliesPath)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
