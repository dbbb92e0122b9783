// Package migrations embeds the SQLite schema of the local kv backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
