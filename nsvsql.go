// Package nsvsql provides a file-based SQL driver implementation.
// It enables reading NSV (Newline-Separated Values) files as SQL databases.
package nsvsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nao1215/nsvsql/domain/model"
	nsvsqldriver "github.com/nao1215/nsvsql/driver"
)

const (
	// DriverName is the name for the nsvsql driver
	DriverName = "nsvsql"
)

// Register registers the nsvsql driver with database/sql
func Register() {
	sql.Register(DriverName, nsvsqldriver.NewDriver())
}

func init() {
	// Auto-register the driver on import
	Register()
}

// Open opens a database connection using the nsvsql driver.
//
// The nsvsql driver uses SQLite3 as an in-memory database engine to provide
// SQL capabilities for NSV files. NSV stores one cell per line and terminates
// each row with a blank line; embedded newlines and backslashes are escaped,
// so arbitrary text survives the format. By convention the first row of a
// file holds the column names.
//
// Supported inputs:
//   - NSV files (.nsv)
//   - Compressed versions of above (.gz, .bz2, .xz, .zst)
//   - Directories (all supported files within will be loaded)
//
// Each file is loaded as a separate table with the table name derived from
// the filename (without extension). All columns are TEXT: NSV cells are
// strings and no type casting is applied.
//
// Important constraints:
//   - INSERT, UPDATE, and DELETE operations are applied only to the in-memory database
//   - Original input files are never modified by these operations
//   - To persist changes, use the DumpDatabase function to export modified data
//
// Example usage:
//
//	db, err := nsvsql.Open("data/users.nsv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.Query(`SELECT name, city FROM users WHERE city <> '' ORDER BY name`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rows.Close()
func Open(paths ...string) (*sql.DB, error) {
	return OpenContext(context.Background(), paths...)
}

// OpenContext opens a database connection using the nsvsql driver with context support.
//
// See Open for the format and loading rules. The context is used for file
// validation and the initial connection ping, and can carry a timeout:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	db, err := nsvsql.OpenContext(ctx, "data/users.nsv")
func OpenContext(ctx context.Context, paths ...string) (*sql.DB, error) {
	// Use builder pattern internally for backward compatibility
	builder := NewBuilder().AddPaths(paths...)

	// Build validates the paths
	validatedBuilder, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	// Open creates the database connection
	return validatedBuilder.Open(ctx)
}

// Type aliases for dump options from model package
type (
	// DumpOptions represents options for dumping database
	DumpOptions = model.DumpOptions
	// CompressionType represents the compression type
	CompressionType = model.CompressionType
)

// Re-export constants for easier use
const (
	// CompressionNone represents no compression
	CompressionNone = model.CompressionNone
	// CompressionGZ represents gzip compression
	CompressionGZ = model.CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2 = model.CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ = model.CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD = model.CompressionZSTD
)

// NewDumpOptions creates new DumpOptions with default values (no compression)
var NewDumpOptions = model.NewDumpOptions

// ErrEmptyFile is returned by Open when an NSV file decodes to zero rows.
// The codec accepts empty input; requiring at least a header row is a policy
// of this layer, matching the convention that persisted NSV tables always
// carry a column-name row.
var ErrEmptyFile = model.ErrEmptyFile

// ErrUnsupportedFormat is returned by Open when a path does not carry a
// supported NSV extension.
var ErrUnsupportedFormat = model.ErrUnsupportedFormat

// DumpDatabase exports all tables from the database to a directory as NSV files.
//
// By default, exports uncompressed .nsv files. You can optionally provide
// DumpOptions to add compression.
//
// Each written file starts with a column-name row, and every row is followed
// by its blank-line terminator, so dumped files decode without losing rows.
//
// Note: nsvsql uses SQLite3 internally as an in-memory database. Any
// modifications made through UPDATE, DELETE, or INSERT operations are not
// persisted to the original files. If you need to persist changes, use
// DumpDatabase to export the modified data.
//
// Example usage:
//
//	// Default: Export as plain NSV files
//	err := DumpDatabase(db, "./output")
//
//	// Export with zstd compression
//	options := NewDumpOptions().WithCompression(CompressionZSTD)
//	err := DumpDatabase(db, "./output", options)
func DumpDatabase(db *sql.DB, outputDir string, opts ...DumpOptions) error {
	// Use default options if none provided
	options := NewDumpOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	// Get the underlying connection
	conn, err := db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	// Use Raw to get the underlying driver connection
	return conn.Raw(func(driverConn interface{}) error {
		if nsvsqlConn, ok := driverConn.(*nsvsqldriver.Connection); ok {
			return nsvsqlConn.DumpWithOptions(outputDir, options)
		}
		return nsvsqldriver.ErrNotNsvsqlConnection
	})
}
