// Package driver provides NSV SQL driver implementation for database/sql.
//
// This package implements a database/sql driver that allows querying NSV
// (Newline-Separated Values) files, including compressed versions, as if they
// were SQL tables. Files are loaded into an in-memory SQLite database for
// query execution.
//
// Key features:
//   - Support for NSV files and their compressed variants (gzip, bzip2, xz, zstd)
//   - Duplicate table name validation across multiple files
//   - Directory scanning with automatic file discovery
//   - Table export back to NSV files
//
// Usage:
//
//	import _ "github.com/nao1215/nsvsql/driver"
//	db, err := sql.Open("nsvsql", "data.nsv")
package driver

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/nsvsql/domain/model"
	"github.com/nao1215/nsvsql/nsv"
	"modernc.org/sqlite"
)

// Driver implements database/sql/driver.Driver interface for NSV-backed SQL.
// It serves as the entry point for creating connections to file-based databases.
type Driver struct{}

// Connector implements database/sql/driver.Connector interface.
// It holds connection parameters and manages the creation of database connections.
// The dsn field contains file paths separated by semicolons for multiple files.
type Connector struct {
	driver *Driver
	dsn    string // Data source name - file paths separated by semicolons
}

// Connection implements database/sql/driver.Conn interface.
// It wraps an underlying SQLite connection that contains loaded file data.
type Connection struct {
	conn driver.Conn // Underlying SQLite connection with loaded file data
}

// Transaction implements database/sql/driver.Tx interface.
// It wraps an underlying SQLite transaction for atomic operations.
type Transaction struct {
	tx driver.Tx // Underlying SQLite transaction
}

// NewDriver creates a new NSV SQL driver
func NewDriver() *Driver {
	return &Driver{}
}

// Open implements driver.Driver interface
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext interface
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	return &Connector{
		driver: d,
		dsn:    dsn,
	}, nil
}

// Connect implements driver.Connector interface
func (c *Connector) Connect(_ context.Context) (driver.Conn, error) {
	// Get SQLite driver and create connection
	sqliteDriver := &sqlite.Driver{}
	conn, err := sqliteDriver.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	// Load file data into database
	if err := c.loadFileDirectly(conn, c.dsn); err != nil {
		_ = conn.Close() // Ignore close error since we're already returning an error
		return nil, fmt.Errorf("failed to load file: %w", err)
	}

	return &Connection{conn: conn}, nil
}

// Driver implements driver.Connector interface
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// loadFileDirectly loads NSV file(s) and/or directories into SQLite3 database using driver.Conn
func (c *Connector) loadFileDirectly(conn driver.Conn, path string) error {
	// Check if path contains multiple paths separated by semicolon
	if strings.Contains(path, ";") {
		return c.loadMultiplePaths(conn, strings.Split(path, ";"))
	}

	return c.loadSinglePath(conn, path)
}

// loadSinglePath loads a single path (file or directory) into the database
func (c *Connector) loadSinglePath(conn driver.Conn, path string) error {
	info, err := c.validatePath(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return c.loadDirectory(conn, path)
	}
	return c.loadSingleFile(conn, path)
}

// validatePath validates that a path is safe and exists, returning its FileInfo
func (c *Connector) validatePath(path string) (os.FileInfo, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	return info, nil
}

// loadSingleFile loads a single file into SQLite3 database
func (c *Connector) loadSingleFile(conn driver.Conn, filePath string) error {
	table, err := c.parseFileToTable(filePath)
	if err != nil {
		return err
	}

	return c.loadTableIntoDatabase(conn, table)
}

// parseFileToTable converts a file to a table with proper error handling
func (c *Connector) parseFileToTable(filePath string) (*model.Table, error) {
	file := model.NewFile(filePath)

	table, err := file.ToTable()
	if err != nil {
		if errors.Is(err, model.ErrDuplicateColumnName) {
			return nil, fmt.Errorf("%w", ErrDuplicateColumnName)
		}
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	return table, nil
}

// loadTableIntoDatabase creates table and inserts data into the database
func (c *Connector) loadTableIntoDatabase(conn driver.Conn, table *model.Table) error {
	// Create table in SQLite3
	if err := c.createTableDirectly(conn, table); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	// Insert records
	if err := c.insertRecordsDirectly(conn, table); err != nil {
		return fmt.Errorf("failed to insert records: %w", err)
	}

	return nil
}

// loadDirectory loads all supported files from a directory into SQLite3 database
func (c *Connector) loadDirectory(conn driver.Conn, dirPath string) error {
	tableNames := make(map[string]string)
	filesToLoad, err := c.collectDirectoryFiles(dirPath, tableNames)
	if err != nil {
		return err
	}

	return c.loadFilesWithErrorHandling(conn, filesToLoad, dirPath)
}

// loadFilesWithErrorHandling loads multiple files with appropriate error handling
func (c *Connector) loadFilesWithErrorHandling(conn driver.Conn, filesToLoad []string, dirPath string) error {
	loadedFiles := 0
	for _, filePath := range filesToLoad {
		if err := c.loadSingleFile(conn, filePath); err != nil {
			// Log error but continue with other files (only for directory loading)
			fmt.Printf("Warning: failed to load file %s: %v\n", filepath.Base(filePath), err)
			continue
		}
		loadedFiles++
	}

	if loadedFiles == 0 {
		return fmt.Errorf("no supported files found in directory: %s", dirPath)
	}

	return nil
}

// collectDirectoryFiles collects files from directory and validates for duplicate table names
func (c *Connector) collectDirectoryFiles(dirPath string, tableNames map[string]string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var filesToLoad []string

	// Collect files and check for duplicate table names
	for _, entry := range entries {
		if entry.IsDir() {
			continue // Skip subdirectories
		}

		fileName := entry.Name()
		filePath := filepath.Join(dirPath, fileName)

		if !model.IsSupportedFile(fileName) || !IsValidFileName(fileName) {
			continue
		}
		if c.shouldSkipFile(filePath, fileName) {
			continue
		}

		tableName := model.TableFromFilePath(filePath)
		if err := c.handleTableNameConflict(tableName, filePath, &filesToLoad, tableNames, dirPath); err != nil {
			return nil, err
		}
	}

	return filesToLoad, nil
}

// shouldSkipFile determines if a file should be skipped based on validation
func (c *Connector) shouldSkipFile(filePath, fileName string) bool {
	file := model.NewFile(filePath)
	_, err := file.ToTable()
	if err != nil {
		// Skip files with errors (e.g., duplicate columns) in directory loading
		fmt.Printf("Warning: skipping file %s: %v\n", fileName, err)
		return true
	}
	return false
}

// handleTableNameConflict handles table name conflicts and file selection logic
func (c *Connector) handleTableNameConflict(tableName, filePath string, filesToLoad *[]string, tableNames map[string]string, dirPath string) error {
	if existingFile, exists := tableNames[tableName]; exists {
		return c.resolveTableNameConflict(tableName, filePath, existingFile, filesToLoad, tableNames, dirPath)
	}

	// No conflict - add the file
	tableNames[tableName] = filePath
	*filesToLoad = append(*filesToLoad, filePath)
	return nil
}

// resolveTableNameConflict resolves conflicts when multiple files would create the same table name
func (c *Connector) resolveTableNameConflict(tableName, filePath, existingFile string, filesToLoad *[]string, tableNames map[string]string, dirPath string) error {
	// Check if existing file is from a different directory (normalize paths for cross-platform compatibility)
	existingDir := filepath.Clean(filepath.Dir(existingFile))
	currentDir := filepath.Clean(dirPath)
	if existingDir != currentDir {
		return fmt.Errorf("%w: table '%s' from files '%s' and '%s'",
			ErrDuplicateTableName, tableName, existingFile, filePath)
	}

	// Same table name within one directory can only come from differently
	// compressed copies of the same logical file - prefer less compressed
	c.selectBetterFile(filepath.Base(existingFile), filepath.Base(filePath),
		existingFile, filePath, filesToLoad, tableNames, tableName)
	return nil
}

// selectBetterFile selects the better file based on compression level
func (c *Connector) selectBetterFile(existingBaseName, currentBaseName, existingFile, filePath string, filesToLoad *[]string, tableNames map[string]string, tableName string) {
	existingCompressionCount := countCompressionExtensions(existingBaseName)
	currentCompressionCount := countCompressionExtensions(currentBaseName)

	// Prefer uncompressed files over compressed ones
	if currentCompressionCount < existingCompressionCount {
		// Replace existing file with current (less compressed) file
		for i, f := range *filesToLoad {
			if f == existingFile {
				(*filesToLoad)[i] = filePath
				break
			}
		}
		tableNames[tableName] = filePath
	}
	// Otherwise keep the existing file (skip current file)
}

// countCompressionExtensions counts how many compression extensions a file has
func countCompressionExtensions(fileName string) int {
	count := 0
	for _, ext := range []string{model.ExtGZ, model.ExtBZ2, model.ExtXZ, model.ExtZSTD} {
		if strings.HasSuffix(fileName, ext) {
			count++
		}
	}
	return count
}

// loadMultiplePaths loads multiple specified files and/or directories into SQLite3 database
func (c *Connector) loadMultiplePaths(conn driver.Conn, paths []string) error {
	if len(paths) == 0 {
		return ErrNoPathsProvided
	}

	filesToLoad, err := c.collectAllFiles(paths)
	if err != nil {
		return err
	}

	return c.loadCollectedFiles(conn, filesToLoad)
}

// collectAllFiles collects all files from multiple paths with duplicate detection
func (c *Connector) collectAllFiles(paths []string) ([]string, error) {
	tableNames := make(map[string]string) // table name -> file path
	var filesToLoad []string

	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		pathFiles, err := c.collectFilesFromPath(path, tableNames)
		if err != nil {
			return nil, err
		}
		filesToLoad = append(filesToLoad, pathFiles...)
	}

	return filesToLoad, nil
}

// collectFilesFromPath collects files from a single path (file or directory)
func (c *Connector) collectFilesFromPath(path string, tableNames map[string]string) ([]string, error) {
	info, err := c.validatePath(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return c.collectDirectoryFiles(path, tableNames)
	}

	return c.collectSingleFile(path, tableNames)
}

// collectSingleFile collects a single file and checks for table name conflicts
func (c *Connector) collectSingleFile(path string, tableNames map[string]string) ([]string, error) {
	if !model.IsSupportedFile(filepath.Base(path)) {
		return nil, nil // Skip unsupported files
	}

	tableName := model.TableFromFilePath(path)
	if existingFile, exists := tableNames[tableName]; exists {
		return nil, fmt.Errorf("%w: table '%s' from files '%s' and '%s'",
			ErrDuplicateTableName, tableName, existingFile, path)
	}

	tableNames[tableName] = path
	return []string{path}, nil
}

// loadCollectedFiles loads all collected files with proper error handling
func (c *Connector) loadCollectedFiles(conn driver.Conn, filesToLoad []string) error {
	loadedFiles := 0
	for _, filePath := range filesToLoad {
		if err := c.loadSingleFile(conn, filePath); err != nil {
			return fmt.Errorf("failed to load file %s: %w", filePath, err)
		}
		loadedFiles++
	}

	if loadedFiles == 0 {
		return ErrNoFilesLoaded
	}

	return nil
}

// createTableDirectly creates table schema using driver.Conn.
// NSV cells carry no type information, so every column is TEXT.
func (c *Connector) createTableDirectly(conn driver.Conn, table *model.Table) error {
	query := c.buildCreateTableQuery(table)
	return c.executeStatement(conn, query, nil)
}

// buildCreateTableQuery constructs a CREATE TABLE query for the given table
func (c *Connector) buildCreateTableQuery(table *model.Table) string {
	columns := make([]string, 0, len(table.Header()))
	for _, col := range table.Header() {
		columns = append(columns, fmt.Sprintf(`[%s] TEXT`, col))
	}

	return fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS [%s] (%s)`,
		table.Name(),
		strings.Join(columns, ", "),
	)
}

// insertRecordsDirectly inserts records using driver.Conn
func (c *Connector) insertRecordsDirectly(conn driver.Conn, table *model.Table) error {
	if len(table.Records()) == 0 {
		return nil
	}

	query := c.buildInsertQuery(table)
	stmt, err := conn.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, record := range table.Records() {
		args := make([]driver.Value, len(record))
		for i, val := range record {
			args[i] = val
		}
		if err := c.executeStatement(stmt, "", args); err != nil {
			return err
		}
	}
	return nil
}

// buildInsertQuery constructs an INSERT query for the given table
func (c *Connector) buildInsertQuery(table *model.Table) string {
	placeholders := c.buildPlaceholders(len(table.Header()))
	return fmt.Sprintf(
		`INSERT INTO [%s] VALUES (%s)`,
		table.Name(),
		placeholders,
	)
}

// buildPlaceholders creates placeholder string for prepared statements
func (c *Connector) buildPlaceholders(count int) string {
	if count == 0 {
		return ""
	}
	placeholders := "?"
	for i := 1; i < count; i++ {
		placeholders += ", ?"
	}
	return placeholders
}

// executeStatement executes a statement with proper context support
func (c *Connector) executeStatement(conn interface{}, query string, args []driver.Value) error {
	switch stmt := conn.(type) {
	case driver.Conn:
		// For CREATE TABLE queries
		preparedStmt, err := stmt.Prepare(query)
		if err != nil {
			return err
		}
		defer preparedStmt.Close()
		return c.executeStatement(preparedStmt, "", args)

	case driver.Stmt:
		// For INSERT queries with prepared statement
		if stmtExecCtx, ok := stmt.(driver.StmtExecContext); ok {
			namedArgs := c.convertToNamedValues(args)
			_, err := stmtExecCtx.ExecContext(context.Background(), namedArgs)
			return err
		}
		return ErrStmtExecContextNotSupported

	default:
		return errors.New("unsupported statement type")
	}
}

// convertToNamedValues converts driver.Value slice to driver.NamedValue slice
func (c *Connector) convertToNamedValues(args []driver.Value) []driver.NamedValue {
	namedArgs := make([]driver.NamedValue, len(args))
	for i, arg := range args {
		namedArgs[i] = driver.NamedValue{
			Ordinal: i + 1,
			Value:   arg,
		}
	}
	return namedArgs
}

// Close implements driver.Conn interface
func (conn *Connection) Close() error {
	if conn.conn != nil {
		return conn.conn.Close()
	}
	return nil
}

// Begin implements driver.Conn interface (deprecated, use BeginTx instead)
func (conn *Connection) Begin() (driver.Tx, error) {
	return conn.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx interface
func (conn *Connection) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if connBeginTx, ok := conn.conn.(driver.ConnBeginTx); ok {
		tx, err := connBeginTx.BeginTx(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Transaction{tx: tx}, nil
	}
	// If ConnBeginTx is not implemented, return an error
	return nil, ErrBeginTxNotSupported
}

// Commit implements driver.Tx interface
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback implements driver.Tx interface
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// Prepare implements driver.Conn interface (deprecated, use PrepareContext instead)
func (conn *Connection) Prepare(query string) (driver.Stmt, error) {
	return conn.PrepareContext(context.Background(), query)
}

// PrepareContext implements driver.ConnPrepareContext interface
func (conn *Connection) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if connPrepareCtx, ok := conn.conn.(driver.ConnPrepareContext); ok {
		return connPrepareCtx.PrepareContext(ctx, query)
	}
	// If ConnPrepareContext is not implemented, return an error
	return nil, ErrPrepareContextNotSupported
}

// Dump exports all tables from the SQLite3 database to the specified directory
// as uncompressed NSV files
func (conn *Connection) Dump(outputDir string) error {
	return conn.DumpWithOptions(outputDir, model.NewDumpOptions())
}

// DumpWithOptions exports all tables from the SQLite3 database to the specified
// directory as NSV files, applying the compression configured in options.
//
// The first row of each written file holds the column names, and every row,
// the last included, carries its blank-line terminator, so dumped files always
// decode without losing rows.
func (conn *Connection) DumpWithOptions(outputDir string, options model.DumpOptions) error {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Get all table names
	tableNames, err := conn.getTableNames()
	if err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}

	// Export each table to NSV
	for _, tableName := range tableNames {
		outputPath := filepath.Join(outputDir, tableName+options.FileExtension())
		if err := conn.exportTableToNSV(tableName, outputPath, options); err != nil {
			return fmt.Errorf("failed to export table %s: %w", tableName, err)
		}
	}

	return nil
}

// getTableNames retrieves all user-defined table names from SQLite3 database
func (conn *Connection) getTableNames() ([]string, error) {
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"
	rows, err := conn.executeQuery(query, nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return conn.scanStringValues(rows, 1)
}

// exportTableToNSV exports a single table to an NSV file
func (conn *Connection) exportTableToNSV(tableName, outputPath string, options model.DumpOptions) error {
	columns, err := conn.getTableColumns(tableName)
	if err != nil {
		return fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	query := fmt.Sprintf("SELECT * FROM [%s]", tableName)
	rows, err := conn.executeQuery(query, nil)
	if err != nil {
		return err
	}
	defer rows.Close()

	data, err := conn.collectRows(rows, columns)
	if err != nil {
		return err
	}

	return writeNSVFile(outputPath, data, options.Compression)
}

// collectRows reads all rows and prepends the header row
func (conn *Connection) collectRows(rows driver.Rows, columns []string) ([][]string, error) {
	data := [][]string{columns}
	dest := make([]driver.Value, len(columns))

	for {
		err := rows.Next(dest)
		if err != nil {
			if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		record := make([]string, len(dest))
		for i, val := range dest {
			record[i] = valueToString(val)
		}
		data = append(data, record)
	}

	return data, nil
}

// valueToString converts a database value to its NSV cell text.
// NULL dumps as the empty cell.
func valueToString(val driver.Value) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeNSVFile encodes data as NSV and writes it through the compression writer
func writeNSVFile(outputPath string, data [][]string, compression model.CompressionType) error {
	writer, closer, err := model.CreateCompressedWriter(outputPath, compression)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(writer, nsv.Encode(data)); err != nil {
		_ = closer()
		return err
	}
	return closer()
}

// getTableColumns retrieves column names for a specific table
func (conn *Connection) getTableColumns(tableName string) ([]string, error) {
	query := fmt.Sprintf("PRAGMA table_info([%s])", tableName)
	rows, err := conn.executeQuery(query, nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return conn.scanStringValues(rows, 6) // PRAGMA table_info returns 6 columns, name is at index 1
}

// executeQuery executes a query and returns rows with proper context support
func (conn *Connection) executeQuery(query string, args []driver.Value) (driver.Rows, error) {
	stmt, err := conn.PrepareContext(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var namedArgs []driver.NamedValue
	if args != nil {
		namedArgs = make([]driver.NamedValue, len(args))
		for i, arg := range args {
			namedArgs[i] = driver.NamedValue{
				Ordinal: i + 1,
				Value:   arg,
			}
		}
	}

	if stmtQueryCtx, ok := stmt.(driver.StmtQueryContext); ok {
		return stmtQueryCtx.QueryContext(context.Background(), namedArgs)
	}

	// Fallback for older drivers
	driverArgs := make([]driver.Value, len(args))
	copy(driverArgs, args)
	return stmt.Query(driverArgs)
}

// scanStringValues scans string values from rows, extracting the column at the specified index
func (conn *Connection) scanStringValues(rows driver.Rows, columnCount int) ([]string, error) {
	var results []string
	dest := make([]driver.Value, columnCount)

	for {
		err := rows.Next(dest)
		if err != nil {
			if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		// For table names, extract from index 0; for column names, extract from index 1
		var value string
		if columnCount == 1 {
			// Table names query
			if name, ok := dest[0].(string); ok {
				value = name
			}
		} else if columnCount == 6 {
			// Column names query (PRAGMA table_info)
			if name, ok := dest[1].(string); ok { // Column name is at index 1
				value = name
			}
		}

		if value != "" {
			results = append(results, value)
		}
	}

	return results, nil
}
