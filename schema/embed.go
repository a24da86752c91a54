// Package schema embeds the smart house SQL schema into the binary.
//
// Importing this package (usually with a blank import from main or from
// tests) registers the files with the database package, so
// database.DB.EnsureSchema can create missing tables without the SQL files
// being present on disk.
package schema

import (
	"embed"

	"github.com/nerrad567/smarthouse-core/internal/infrastructure/database"
)

//go:embed *.sql
var schemaFS embed.FS

func init() {
	database.SchemaFS = schemaFS
	database.SchemaDir = "."
}
