package database

import (
	"context"
	"embed"
	"testing"
)

//go:embed testdata/*.sql
var testSchemaFS embed.FS

// useTestSchema points the package at the testdata schema for one test.
func useTestSchema(t *testing.T) {
	t.Helper()
	origFS, origDir := SchemaFS, SchemaDir
	SchemaFS, SchemaDir = testSchemaFS, "testdata"
	t.Cleanup(func() {
		SchemaFS, SchemaDir = origFS, origDir
	})
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	return count == 1
}

func TestEnsureSchema(t *testing.T) {
	useTestSchema(t)
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}

	for _, table := range []string{"widgets", "widget_parts"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s not created", table)
		}
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	useTestSchema(t)
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("first EnsureSchema() error = %v", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO widgets (id, name) VALUES (1, 'gear')"); err != nil {
		t.Fatalf("inserting widget: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema() error = %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM widgets").Scan(&count); err != nil {
		t.Fatalf("counting widgets: %v", err)
	}
	if count != 1 {
		t.Errorf("widgets count = %d after re-applying schema, want 1", count)
	}
}

func TestEnsureSchema_NoFiles(t *testing.T) {
	origFS := SchemaFS
	SchemaFS = embed.FS{}
	defer func() { SchemaFS = origFS }()

	db := openTestDB(t)
	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Errorf("EnsureSchema() with no schema error = %v, want nil", err)
	}
}

func TestLoadSchemaFiles_Order(t *testing.T) {
	useTestSchema(t)

	files, err := loadSchemaFiles()
	if err != nil {
		t.Fatalf("loadSchemaFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("loadSchemaFiles() returned %d files, want 2", len(files))
	}
	if files[0].Name != "001_widgets.sql" || files[1].Name != "002_widget_parts.sql" {
		t.Errorf("files not sorted by name: %s, %s", files[0].Name, files[1].Name)
	}
}
