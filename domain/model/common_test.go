package model

import (
	"errors"
	"testing"
)

func TestHeader_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		h1       Header
		h2       Header
		expected bool
	}{
		{
			name:     "Equal headers",
			h1:       NewHeader([]string{"a", "b"}),
			h2:       NewHeader([]string{"a", "b"}),
			expected: true,
		},
		{
			name:     "Different lengths",
			h1:       NewHeader([]string{"a"}),
			h2:       NewHeader([]string{"a", "b"}),
			expected: false,
		},
		{
			name:     "Different values",
			h1:       NewHeader([]string{"a", "b"}),
			h2:       NewHeader([]string{"a", "c"}),
			expected: false,
		},
		{
			name:     "Empty headers",
			h1:       NewHeader([]string{}),
			h2:       NewHeader([]string{}),
			expected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.h1.Equal(tt.h2); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRecord_Equal(t *testing.T) {
	t.Parallel()

	t.Run("Equal records", func(t *testing.T) {
		t.Parallel()

		r1 := NewRecord([]string{"x", "y"})
		r2 := NewRecord([]string{"x", "y"})
		if !r1.Equal(r2) {
			t.Error("expected records to be equal")
		}
	})

	t.Run("Different records", func(t *testing.T) {
		t.Parallel()

		r1 := NewRecord([]string{"x", "y"})
		r2 := NewRecord([]string{"x", "z"})
		if r1.Equal(r2) {
			t.Error("expected records to be not equal")
		}
	})
}

func TestValidateColumnNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns []string
		wantErr bool
	}{
		{
			name:    "Unique columns",
			columns: []string{"id", "name", "city"},
			wantErr: false,
		},
		{
			name:    "Duplicate columns",
			columns: []string{"id", "name", "id"},
			wantErr: true,
		},
		{
			name:    "Duplicate after trimming",
			columns: []string{"id", " id "},
			wantErr: true,
		},
		{
			name:    "Case-sensitive comparison",
			columns: []string{"id", "ID"},
			wantErr: false,
		},
		{
			name:    "Empty columns",
			columns: []string{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateColumnNames(tt.columns)
			if tt.wantErr {
				if !errors.Is(err, ErrDuplicateColumnName) {
					t.Errorf("expected ErrDuplicateColumnName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
