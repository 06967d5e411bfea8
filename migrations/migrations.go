// Package migrations embeds the SQL schema of the Postgres slot store.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
