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

// FileConfig is a DTO used exclusively for file unmarshalling. Durations
// accept "3s" style strings or integer nanoseconds.
type FileConfig struct {
	Store               string         `json:"store" yaml:"store"`
	ServerEndpointAddr  string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	DSN                 string         `json:"dsn" yaml:"dsn"`
	KeystorePath        string         `json:"keystore_path" yaml:"keystore_path"`
	ContractAddress     string         `json:"contract_address" yaml:"contract_address"`
	FetchConcurrency    int            `json:"fetch_concurrency" yaml:"fetch_concurrency"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	S3Bucket            string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Prefix            string         `json:"s3_prefix" yaml:"s3_prefix"`
	S3Region            string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey         string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey         string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

func configPath(args []string, getenv func(string) string) string {
	if p := flagx.ConfigFileFrom(args); p != "" {
		return p
	}
	return getenv(flagx.ConfigEnvVar)
}

// parseFile overlays cfg with values loaded from path. Absent fields keep
// their current value.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for dst, v := range map[*string]string{
		&cfg.Store:              fc.Store,
		&cfg.ServerEndpointAddr: fc.ServerEndpointAddr,
		&cfg.DSN:                fc.DSN,
		&cfg.KeystorePath:       fc.KeystorePath,
		&cfg.ContractAddress:    fc.ContractAddress,
		&cfg.S3Bucket:           fc.S3Bucket,
		&cfg.S3Prefix:           fc.S3Prefix,
		&cfg.S3Region:           fc.S3Region,
		&cfg.S3BaseEndpoint:     fc.S3BaseEndpoint,
		&cfg.S3AccessKey:        fc.S3AccessKey,
		&cfg.S3SecretKey:        fc.S3SecretKey,
		&cfg.LogLevel:           fc.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}

	if fc.FetchConcurrency > 0 {
		cfg.FetchConcurrency = fc.FetchConcurrency
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	return nil
}
