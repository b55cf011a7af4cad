// Package model provides domain model for nsvsql
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateColumnName is returned when a file contains duplicate column names
var ErrDuplicateColumnName = errors.New("duplicate column name")

// ErrEmptyFile is returned when an NSV file decodes to zero rows.
// The codec itself accepts empty input; requiring at least a header row is a
// policy of this loading layer.
var ErrEmptyFile = errors.New("empty NSV file")

// ErrUnsupportedFormat is returned when a file does not carry a supported extension
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Header is file header.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record is file records.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// ValidateColumnNames checks for duplicate column names and returns error if found.
// Column name comparison is case-sensitive.
func ValidateColumnNames(columns []string) error {
	columnsSeen := make(map[string]bool)
	for _, col := range columns {
		trimmedCol := strings.TrimSpace(col)
		if columnsSeen[trimmedCol] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		columnsSeen[trimmedCol] = true
	}
	return nil
}
