// Package config loads runtime configuration for the gophschedule client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c/-config or GOPHSCHEDULE_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-store string      grpc | sqlite | postgres | s3 | memory
//	-a string          address:port of the gRPC store
//	-d string          sqlite file or postgres DSN
//	-keystore string   wallet keystore path (~ is expanded)
//	-contract string   contract address shown in the reveal challenge
//	-n int             concurrent record fetches per refresh
//	-i int             online status check interval (seconds)
//	-b, -prefix        S3 bucket and key prefix
//	-g, -e             S3 region and base endpoint
//	-u, -p             S3 access key and secret
//	-log-level string  debug | info | warn | error
//
// # File schema
//
//	{
//	  "store": "grpc",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "keystore_path": "~/.gophschedule/keystore.json",
//	  "fetch_concurrency": 4,
//	  "online_check_interval": "3s"
//	}
package config
