// Package migrations embeds the PostgreSQL schema of the server kv backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
