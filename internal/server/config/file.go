package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophschedule/internal/flagx"
	"github.com/dmitrijs2005/gophschedule/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Durations accept "15m" style
// strings or integer nanoseconds. Absent fields keep their current value.
type FileConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	AdminAddr                   string         `json:"admin_addr" yaml:"admin_addr"`
	Storage                     string         `json:"storage" yaml:"storage"`
	SQLitePath                  string         `json:"sqlite_path" yaml:"sqlite_path"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	LoginWindow                 timex.Duration `json:"login_window" yaml:"login_window"`
	OwnerAddress                string         `json:"owner_address" yaml:"owner_address"`
	LoginRatePerSecond          float64        `json:"login_rate_per_second" yaml:"login_rate_per_second"`
	LoginBurst                  int            `json:"login_burst" yaml:"login_burst"`
	S3RootUser                  string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Prefix                    string         `json:"s3_prefix" yaml:"s3_prefix"`
	S3Region                    string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	LogFormat                   string         `json:"log_format" yaml:"log_format"`
}

func configPath(args []string, getenv func(string) string) string {
	if p := flagx.ConfigFileFrom(args); p != "" {
		return p
	}
	return getenv(flagx.ConfigEnvVar)
}

// parseFile overlays values from path. An empty path loads nothing. Files
// ending in .yaml or .yml are read as YAML, anything else as JSON.
func parseFile(config *Config, path string) error {

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(file, c)
	default:
		err = json.Unmarshal(file, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.AdminAddr, c.AdminAddr)
	setString(&config.Storage, c.Storage)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.OwnerAddress, c.OwnerAddress)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.LoginWindow.Duration > 0 {
		config.LoginWindow = c.LoginWindow.Duration
	}
	if c.LoginRatePerSecond > 0 {
		config.LoginRatePerSecond = c.LoginRatePerSecond
	}
	if c.LoginBurst > 0 {
		config.LoginBurst = c.LoginBurst
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
