// Package migrations carries the embedded schema migrations, one dialect
// directory per supported driver.
package migrations

import "embed"

//go:embed sqlite/*.sql mysql/*.sql
var FS embed.FS
