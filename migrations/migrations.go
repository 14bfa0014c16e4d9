// Package migrations embeds the goose migration files for both entity
// kinds: "game" holds the team registry schema, "team" holds the roster
// and click ledger schema.
package migrations

import "embed"

//go:embed game/*.sql team/*.sql
var FS embed.FS
