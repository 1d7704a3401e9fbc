// Package results persists study-session outcomes per deck: a DuckDB
// database for querying history plus one JSON artifact per session.
package results

import (
	"database/sql"
	_ "embed"
	"errors"
)

// schemaDDL holds the results schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing results databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("results: db is nil")
	}
	_, err := db.Exec(schemaDDL)
	return err
}
