// Package nsvsql provides a file-based SQL driver implementation that enables
// querying NSV (Newline-Separated Values) files using SQLite3 SQL syntax.
//
// nsvsql allows you to treat NSV files as SQL databases without any data
// import or transformation steps. It uses SQLite3 as an in-memory database
// engine, providing full SQL capabilities including JOINs, aggregations,
// window functions, and CTEs.
//
// # The NSV format
//
// NSV stores one cell per line and marks the end of a row with a blank line.
// Cells may contain arbitrary text: embedded newlines are stored as the
// two-character escape `\n`, backslashes as `\\`, and an empty cell is stored
// as the single character `\` so it is never mistaken for a row terminator.
// The low-level codec lives in the nsv subpackage and can be used on its own.
//
// By convention, the first row of a file holds the column names. Every cell
// is a string; tables are created with TEXT columns only.
//
// # Features
//
//   - Query NSV files using standard SQL
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard)
//   - Support for multiple input sources (files, directories, embed.FS)
//   - Export query results back to NSV files with DumpDatabase
//
// # Basic Usage
//
// The simplest way to use nsvsql is with the Open or OpenContext functions:
//
//	db, err := nsvsql.Open("data.nsv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Query("SELECT * FROM data WHERE city = 'NYC'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rows.Close()
//
// # Advanced Usage
//
// For more complex scenarios, use the Builder pattern:
//
//	builder := nsvsql.NewBuilder().
//	    AddPath("users.nsv").
//	    AddPath("orders.nsv.gz")
//	validatedBuilder, err := builder.Build(ctx)
//	if err != nil {
//	    return err
//	}
//	defer validatedBuilder.Cleanup()
//
//	db, err := validatedBuilder.Open(ctx)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
// Modifications made through INSERT, UPDATE, or DELETE affect only the
// in-memory database. Use DumpDatabase to persist the current state to a
// directory of NSV files.
package nsvsql
