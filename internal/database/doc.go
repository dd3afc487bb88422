// Package database provides the PostgreSQL connection pool and schema used by the
// postgres credential backend.
//
// The backend keeps exactly one row in team_credentials (id = 1).
package database
