package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// SchemaFS should be set by the schema package to embed the schema files.
//
// Usage in a schema package:
//
//	//go:embed *.sql
//	var schemaFS embed.FS
//
//	func init() {
//	    database.SchemaFS = schemaFS
//	    database.SchemaDir = "."
//	}
var SchemaFS embed.FS

// SchemaDir is the directory within SchemaFS containing schema files.
var SchemaDir = "schema"

// SchemaFile is one embedded DDL script.
type SchemaFile struct {
	// Name is the file name, e.g. "001_rooms.sql".
	Name string

	// SQL is the file content.
	SQL string
}

// EnsureSchema creates any missing tables by executing every embedded
// *.sql file in file-name order.
//
// Schema files must be idempotent (CREATE TABLE IF NOT EXISTS,
// CREATE INDEX IF NOT EXISTS). There is no version bookkeeping: running
// EnsureSchema against an existing database leaves its data untouched.
//
// All files run inside one transaction.
func (db *DB) EnsureSchema(ctx context.Context) error {
	files, err := loadSchemaFiles()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	for _, f := range files {
		if _, err := tx.ExecContext(ctx, f.SQL); err != nil {
			return fmt.Errorf("applying schema file %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	return nil
}

// loadSchemaFiles loads all *.sql files from the embedded filesystem.
func loadSchemaFiles() ([]SchemaFile, error) {
	var empty embed.FS
	if SchemaFS == empty {
		return nil, nil
	}

	entries, err := fs.ReadDir(SchemaFS, SchemaDir)
	if err != nil {
		return nil, fmt.Errorf("reading schema dir %s: %w", SchemaDir, err)
	}

	var files []SchemaFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := fs.ReadFile(SchemaFS, path.Join(SchemaDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		files = append(files, SchemaFile{Name: entry.Name(), SQL: string(data)})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}
