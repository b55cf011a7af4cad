// Package driver provides NSV SQL driver implementation.
// This package implements database/sql/driver interfaces to enable
// reading NSV files as SQL databases through SQLite3.
package driver
