// Package migrations embeds the SQL migrations applied by goose when the
// PostgreSQL registry backend starts.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
