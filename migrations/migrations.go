// Package migrations embeds the SQL schema applied by sqlite.DB.RunMigrations
// and the migrate command.
package migrations

import "embed"

// FS holds the numbered *.up.sql files, applied in lexical order.
//
//go:embed *.up.sql
var FS embed.FS
