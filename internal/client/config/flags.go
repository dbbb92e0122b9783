package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/flagx"
)

var clientFlags = []string{
	"-store", "-a", "-d", "-keystore", "-contract", "-n", "-i",
	"-b", "-prefix", "-g", "-e", "-u", "-p", "-log-level",
}

// FlagNames lists every command-line flag the client config consumes,
// including the config file selectors.
func FlagNames() []string {
	return append([]string{"-c", "-config", "--config"}, clientFlags...)
}

// parseFlags populates Config fields from command-line flags. Arguments it
// does not know (subcommands, cobra flags) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, clientFlags)

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Store, "store", cfg.Store, "store backend")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "sqlite file or postgres DSN")
	fs.StringVar(&cfg.KeystorePath, "keystore", cfg.KeystorePath, "wallet keystore path")
	fs.StringVar(&cfg.ContractAddress, "contract", cfg.ContractAddress, "contract address")
	fs.IntVar(&cfg.FetchConcurrency, "n", cfg.FetchConcurrency, "concurrent record fetches")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Prefix, "prefix", cfg.S3Prefix, "S3 key prefix")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
