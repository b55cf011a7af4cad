package driver

import (
	"errors"
	"testing"
)

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "Valid absolute path", path: "/tmp/users.nsv", wantErr: false},
		{name: "Valid relative path", path: "data/users.nsv", wantErr: false},
		{name: "Relative path with parent reference", path: "../data/users.nsv", wantErr: false},
		{name: "Empty path", path: "", wantErr: true},
		{name: "Whitespace-only path", path: "   ", wantErr: true},
		{name: "Null byte injection", path: "users.nsv\x00.txt", wantErr: true},
		{name: "Excessive traversal", path: "../../../../etc/passwd", wantErr: true},
		{name: "Windows reserved name", path: "con.nsv", wantErr: true},
		{name: "Windows reserved name with compression", path: "nul.nsv.gz", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidatePath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("ValidatePath(%q) = %v, want ErrInvalidPath", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidatePath(%q) = %v, want nil", tt.path, err)
			}
		})
	}
}

func TestIsValidFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		expected bool
	}{
		{name: "Normal file name", fileName: "users.nsv", expected: true},
		{name: "Hidden file", fileName: ".users.nsv", expected: false},
		{name: "Null byte", fileName: "users\x00.nsv", expected: false},
		{name: "Pipe character", fileName: "users|.nsv", expected: false},
		{name: "Wildcard character", fileName: "users*.nsv", expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsValidFileName(tt.fileName); got != tt.expected {
				t.Errorf("IsValidFileName(%q) = %v, want %v", tt.fileName, got, tt.expected)
			}
		})
	}
}
