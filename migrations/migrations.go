// Package migrations embeds the SQL schema so the migrate binary carries it.
package migrations

import "embed"

// Files holds every migration, named <version>_<description>.sql.
//
//go:embed *.sql
var Files embed.FS
