// Package migrations embeds the catalog schema so the server and the
// migrate command apply the same files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
