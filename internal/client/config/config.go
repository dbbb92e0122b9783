package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/filex"
)

// Config holds runtime settings for the gophschedule CLI.
type Config struct {
	Store               string
	ServerEndpointAddr  string
	DSN                 string
	KeystorePath        string
	ContractAddress     string
	FetchConcurrency    int
	OnlineCheckInterval time.Duration
	S3Bucket            string
	S3Prefix            string
	S3Region            string
	S3BaseEndpoint      string
	S3AccessKey         string
	S3SecretKey         string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Store = "grpc"
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DSN = "gophschedule.db"
	c.KeystorePath = "~/.gophschedule/keystore.json"
	c.ContractAddress = "0x0000000000000000000000000000000000000000"
	c.FetchConcurrency = 4
	c.OnlineCheckInterval = 3 * time.Second
	c.S3Bucket = "gophschedule"
	c.S3Region = "us-east-1"
	c.LogLevel = "warn"
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

// Load applies defaults, then the optional config file, then flags, and
// finally expands the keystore path.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, configPath(args, getenv)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	p, err := filex.ExpandHome(cfg.KeystorePath)
	if err != nil {
		return nil, fmt.Errorf("keystore path: %w", err)
	}
	cfg.KeystorePath = p

	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = 1
	}
	return cfg, nil
}
