// Package migrations holds the versioned PostgreSQL schema for the catering engine.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql file in this directory.
//
//go:embed *.sql
var FS embed.FS
