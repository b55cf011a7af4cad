package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/nsvsql/nsv"
)

// FileType represents supported file types
type FileType int

const (
	// FileTypeNSV represents NSV file type
	FileTypeNSV FileType = iota
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// ExtNSV is the NSV file extension
	ExtNSV = ".nsv"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

// File represents a file that can be converted to Table
type File struct {
	path     string
	fileType FileType
}

// NewFile creates a new File
func NewFile(path string) *File {
	return &File{
		path:     path,
		fileType: detectFileType(path),
	}
}

// IsSupportedFile checks if the file has a supported extension
func IsSupportedFile(fileName string) bool {
	fileName = strings.ToLower(fileName)

	// Remove compression extensions
	for _, ext := range []string{ExtGZ, ExtBZ2, ExtXZ, ExtZSTD} {
		if strings.HasSuffix(fileName, ext) {
			fileName = strings.TrimSuffix(fileName, ext)
			break
		}
	}

	return strings.HasSuffix(fileName, ExtNSV)
}

// SupportedFileExtPatterns returns all supported file patterns for glob matching
func SupportedFileExtPatterns() []string {
	compressionExts := []string{"", ExtGZ, ExtBZ2, ExtXZ, ExtZSTD}

	patterns := make([]string, 0, len(compressionExts))
	for _, compressionExt := range compressionExts {
		patterns = append(patterns, "*"+ExtNSV+compressionExt)
	}
	return patterns
}

// Path returns file path
func (f *File) Path() string {
	return f.path
}

// Type returns file type
func (f *File) Type() FileType {
	return f.fileType
}

// IsNSV returns true if the file is NSV format
func (f *File) IsNSV() bool {
	return f.fileType == FileTypeNSV
}

// IsCompressed returns true if file is compressed
func (f *File) IsCompressed() bool {
	return DetectCompressionType(f.path) != CompressionNone
}

// ToTable converts file to Table structure.
//
// The first decoded row becomes the column header by convention; the codec
// itself has no header concept. A file that decodes to zero rows fails with
// ErrEmptyFile. Records shorter than the header are padded with empty cells
// and longer ones are truncated to the header width.
func (f *File) ToTable() (*Table, error) {
	if f.fileType == FileTypeUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.path)
	}

	reader, closer, err := OpenCompressedReader(f.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closer()
	}()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	rows := nsv.Decode(string(content))
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, f.path)
	}

	header := NewHeader(rows[0])
	if err := ValidateColumnNames(rows[0]); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, normalizeRecord(row, len(header)))
	}

	tableName := TableFromFilePath(f.path)
	return NewTable(tableName, header, records), nil
}

// normalizeRecord fits a decoded row to the header width
func normalizeRecord(row []string, width int) Record {
	record := make(Record, width)
	for i := 0; i < width; i++ {
		if i < len(row) {
			record[i] = row[i]
		}
	}
	return record
}

// detectFileType detects file type from extension, considering compressed files
func detectFileType(path string) FileType {
	if IsSupportedFile(path) {
		return FileTypeNSV
	}
	return FileTypeUnsupported
}
