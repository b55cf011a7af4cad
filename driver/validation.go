package driver

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/nao1215/nsvsql/domain/model"
)

var (
	// ErrInvalidPath is returned when a path is invalid or potentially dangerous
	ErrInvalidPath = errors.New("nsvsql driver: invalid or dangerous path")
)

// ValidatePath performs comprehensive path validation for security
func ValidatePath(path string) error {
	// Check for empty or whitespace-only paths
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}

	// Check for null byte injection
	if strings.Contains(path, "\x00") {
		return ErrInvalidPath
	}

	// Check for path traversal attempts - but allow legitimate relative paths
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") && !isLegitimateRelativePath(path) {
		return ErrInvalidPath
	}

	// Check for Windows reserved names
	reservedNames := []string{"con", "prn", "aux", "nul", "com1", "com2", "com3", "com4", "com5", "com6", "com7", "com8", "com9", "lpt1", "lpt2", "lpt3", "lpt4", "lpt5", "lpt6", "lpt7", "lpt8", "lpt9"}
	baseName := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{model.ExtGZ, model.ExtBZ2, model.ExtXZ, model.ExtZSTD} {
		baseName = strings.TrimSuffix(baseName, ext)
	}
	baseName = strings.TrimSuffix(baseName, model.ExtNSV)
	for _, reserved := range reservedNames {
		if baseName == reserved {
			return ErrInvalidPath
		}
	}

	return nil
}

// IsValidFileName checks if a filename is safe to process
func IsValidFileName(fileName string) bool {
	// Skip hidden files
	if strings.HasPrefix(fileName, ".") {
		return false
	}

	// Check for null bytes
	if strings.Contains(fileName, "\x00") {
		return false
	}

	// Check for suspicious characters
	suspiciousChars := []string{"<", ">", ":", "\"", "|", "?", "*"}
	for _, char := range suspiciousChars {
		if strings.Contains(fileName, char) {
			return false
		}
	}

	return true
}

// isLegitimateRelativePath checks if a path containing ".." is a legitimate relative path
func isLegitimateRelativePath(path string) bool {
	// Clean the path and check if it's trying to escape the current directory structure
	cleanPath := filepath.Clean(path)

	// If the cleaned path starts with "..", count how many levels up it goes.
	// Handle both Unix and Windows path separators.
	if strings.HasPrefix(cleanPath, "../") || strings.HasPrefix(cleanPath, "..\\") {
		parts := strings.FieldsFunc(cleanPath, func(c rune) bool {
			return c == '/' || c == '\\'
		})
		upLevels := 0
		for _, part := range parts {
			if part == ".." {
				upLevels++
			} else if part != "." && part != "" {
				break
			}
		}
		// Allow only a reasonable number of parent directory references
		return upLevels <= 3
	}

	return true
}
