// Package database provides SQLite connectivity for the smart house core.
//
// This package manages:
//   - A single database connection (the core is a single-writer batch loader)
//   - Explicit lifecycle: Open, Close and Reconnect
//   - Idempotent schema bootstrap from embedded SQL files
//   - Foreign key enforcement and STRICT tables for type safety
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.EnsureSchema(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Schema Strategy:
//
// Schema files only create what is missing (CREATE ... IF NOT EXISTS). There
// is no version table and no down scripts; an existing database is never
// altered.
package database
