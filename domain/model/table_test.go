package model

import "testing"

func TestNewTable(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"id", "name"})
	records := []Record{
		NewRecord([]string{"1", "Gina"}),
		NewRecord([]string{"2", "Yulia"}),
	}
	table := NewTable("users", header, records)

	if table.Name() != "users" {
		t.Errorf("Name() = %q, want %q", table.Name(), "users")
	}
	if !table.Header().Equal(header) {
		t.Errorf("Header() = %v, want %v", table.Header(), header)
	}
	if len(table.Records()) != 2 {
		t.Errorf("len(Records()) = %d, want 2", len(table.Records()))
	}
}

func TestTable_Equal(t *testing.T) {
	t.Parallel()

	base := NewTable(
		"users",
		NewHeader([]string{"id", "name"}),
		[]Record{NewRecord([]string{"1", "Gina"})},
	)

	tests := []struct {
		name     string
		other    *Table
		expected bool
	}{
		{
			name: "Equal tables",
			other: NewTable(
				"users",
				NewHeader([]string{"id", "name"}),
				[]Record{NewRecord([]string{"1", "Gina"})},
			),
			expected: true,
		},
		{
			name: "Different name",
			other: NewTable(
				"accounts",
				NewHeader([]string{"id", "name"}),
				[]Record{NewRecord([]string{"1", "Gina"})},
			),
			expected: false,
		},
		{
			name: "Different header",
			other: NewTable(
				"users",
				NewHeader([]string{"id", "email"}),
				[]Record{NewRecord([]string{"1", "Gina"})},
			),
			expected: false,
		},
		{
			name: "Different records",
			other: NewTable(
				"users",
				NewHeader([]string{"id", "name"}),
				[]Record{NewRecord([]string{"1", "Mia"})},
			),
			expected: false,
		},
		{
			name: "Different record count",
			other: NewTable(
				"users",
				NewHeader([]string{"id", "name"}),
				[]Record{},
			),
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := base.Equal(tt.other); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTableFromFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filePath string
		expected string
	}{
		{
			name:     "Plain NSV file",
			filePath: "/tmp/users.nsv",
			expected: "users",
		},
		{
			name:     "Gzip compressed NSV file",
			filePath: "/tmp/users.nsv.gz",
			expected: "users",
		},
		{
			name:     "Bzip2 compressed NSV file",
			filePath: "/tmp/users.nsv.bz2",
			expected: "users",
		},
		{
			name:     "XZ compressed NSV file",
			filePath: "data/users.nsv.xz",
			expected: "users",
		},
		{
			name:     "Zstd compressed NSV file",
			filePath: "users.nsv.zst",
			expected: "users",
		},
		{
			name:     "File name with dots",
			filePath: "/tmp/daily.metrics.nsv",
			expected: "daily.metrics",
		},
		{
			name:     "No extension",
			filePath: "/tmp/users",
			expected: "users",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TableFromFilePath(tt.filePath); got != tt.expected {
				t.Errorf("TableFromFilePath(%q) = %q, want %q", tt.filePath, got, tt.expected)
			}
		})
	}
}
