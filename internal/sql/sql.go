// Package sql embeds the schema migrations applied by billaudit migrate.
package sql

import "embed"

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
