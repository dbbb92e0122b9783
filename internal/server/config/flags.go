package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophschedule/internal/flagx"
)

var serverFlags = []string{
	"-a", "-admin", "-storage", "-sqlite", "-d", "-s", "-t", "-w", "-owner",
	"-u", "-p", "-b", "-prefix", "-g", "-e", "-log-level", "-log-format",
}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string          gRPC bind address (e.g., ":50051")
//	-admin string      admin HTTP bind address, "" to disable
//	-storage string    memory | sqlite | postgres | s3
//	-sqlite string     SQLite database file
//	-d string          PostgreSQL DSN
//	-s string          JWT HMAC secret key
//	-t duration        access token validity (e.g., "15m")
//	-w duration        login message freshness window
//	-owner string      only wallet address allowed to write
//	-u, -p string      S3 root user and password
//	-b, -prefix string S3 bucket and key prefix
//	-g, -e string      S3 region and base endpoint
//	-log-level string  debug | info | warn | error
//	-log-format string json | text
//
// Unknown arguments are dropped by flagx.FilterArgs first, so the config
// file flag does not collide with these.
func parseFlags(config *Config, args []string) error {
	// Filter args to include only the flags handled here.
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.AdminAddr, "admin", config.AdminAddr, "admin HTTP address")
	fs.StringVar(&config.Storage, "storage", config.Storage, "storage backend")
	fs.StringVar(&config.SQLitePath, "sqlite", config.SQLitePath, "sqlite database file")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&config.LoginWindow, "w", config.LoginWindow, "login freshness window")
	fs.StringVar(&config.OwnerAddress, "owner", config.OwnerAddress, "owner wallet address")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Prefix, "prefix", config.S3Prefix, "S3 key prefix")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format")

	return fs.Parse(args)
}
