// Package migrations embeds the Postgres schema migrations run by cmd/migrate
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
