// Package migrations embeds the schema so binaries migrate without a checkout.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS
