package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8501")
//	-d string   PostgreSQL DSN (empty keeps users in memory)
//	-s string   session cookie signing key
//	-t int      session validity, minutes
//	-m int      maximum number of live sessions
//	-k int      bcrypt cost
//	-strict     enforce email format and password strength on signup
//	-x string   dataset path (.xlsx, .csv or s3://bucket/key)
//	-i string   background image path
//	-v string   embedded visualization URL
//	-r string   chatbot replies YAML file
//	-l string   log format (json, text, zap)
//	-u string   S3 root user
//	-p string   S3 root password
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// os.Args is first narrowed with flagx.FilterArgs so flags owned by other
// layers (-c) do not fail parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-m", "-k", "-strict", "-x", "-i", "-v", "-r", "-l", "-u", "-p", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")

	fs.IntVar(&config.MaxSessions, "m", config.MaxSessions, "max live sessions")
	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "bcrypt cost")
	fs.BoolVar(&config.StrictSignup, "strict", config.StrictSignup, "enforce email and password rules on signup")
	fs.StringVar(&config.DatasetPath, "x", config.DatasetPath, "dataset path")
	fs.StringVar(&config.BackgroundImagePath, "i", config.BackgroundImagePath, "background image path")
	fs.StringVar(&config.EmbedURL, "v", config.EmbedURL, "embedded visualization URL")
	fs.StringVar(&config.ChatRepliesPath, "r", config.ChatRepliesPath, "chatbot replies YAML")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only touch the duration when -t was given, so sub-minute values from
	// other layers survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
		}
	})
}
