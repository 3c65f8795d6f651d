// Package migrations embebe los archivos SQL para que el binario de
// migración no dependa del working directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS
