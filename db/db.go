package db

import "embed"

// Migrations holds the schema of the local session store.
//
//go:embed migrations/*.sql
var Migrations embed.FS
