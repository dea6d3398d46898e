// Package migrations embeds the SQL schema migrations applied at
// startup by the postgres store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
