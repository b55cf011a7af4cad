package nsv

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "Empty input yields empty table",
			input:    "",
			expected: [][]string{},
		},
		{
			name:     "Single terminated row",
			input:    "a\nb\n\n",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "Multiple rows",
			input:    "name\nage\n\nAlice\n30\n\nBob\n25\n\n",
			expected: [][]string{{"name", "age"}, {"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:     "Lone terminator yields one empty row",
			input:    "\n",
			expected: [][]string{{}},
		},
		{
			name:     "Empty-cell marker decodes to empty string",
			input:    "\\\n\n",
			expected: [][]string{{""}},
		},
		{
			name:     "Escaped newline decodes to embedded newline",
			input:    "line1\\nline2\n\n",
			expected: [][]string{{"line1\nline2"}},
		},
		{
			name:     "Escaped backslash decodes to single backslash",
			input:    "a\\\\b\n\n",
			expected: [][]string{{`a\b`}},
		},
		{
			name: "Escaped backslash before n stays literal",
			// Cell text a\\nb: the leading \\ resolves first, leaving a
			// literal backslash next to a literal 'n', not a newline.
			input:    "a\\\\nb\n\n",
			expected: [][]string{{`a\nb`}},
		},
		{
			name:     "Lone trailing backslash stays literal",
			input:    "ab\\\n\n",
			expected: [][]string{{`ab\`}},
		},
		{
			name:     "Unknown escape stays literal",
			input:    "a\\tb\n\n",
			expected: [][]string{{`a\tb`}},
		},
		{
			name:     "Two backslashes alone decode to one backslash",
			input:    "\\\\\n\n",
			expected: [][]string{{`\`}},
		},
		{
			name:     "Consecutive terminators yield empty rows",
			input:    "a\n\n\n\n",
			expected: [][]string{{"a"}, {}, {}},
		},
		{
			name:     "Unterminated final row is dropped",
			input:    "a\nb\n",
			expected: [][]string{},
		},
		{
			name:     "Terminated twin of the dropped input keeps its row",
			input:    "a\nb\n\n",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "Cells after last terminator are dropped",
			input:    "a\n\nb\nc\n",
			expected: [][]string{{"a"}},
		},
		{
			name:     "Trailing text without newline is dropped",
			input:    "a\n\nb",
			expected: [][]string{{"a"}},
		},
		{
			name:     "Multibyte cell values pass through",
			input:    "こんにちは\n世界\n\n",
			expected: [][]string{{"こんにちは", "世界"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Decode(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Decode(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecodeWithOptions_FlushFinalRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "Unterminated final row is kept",
			input:    "a\nb\n",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "Trailing segment without newline is kept as a cell",
			input:    "a\nb",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "Trailing segment is unescaped",
			input:    "x\\ny",
			expected: [][]string{{"x\ny"}},
		},
		{
			name:     "Terminated input is unchanged",
			input:    "a\nb\n\n",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "Empty pending row is not flushed",
			input:    "a\n\n",
			expected: [][]string{{"a"}},
		},
		{
			name:     "Empty input stays empty",
			input:    "",
			expected: [][]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := NewDecodeOptions().WithFlushFinalRow(true)
			got := DecodeWithOptions(tt.input, opts)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("DecodeWithOptions(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewDecodeOptions(t *testing.T) {
	t.Parallel()

	opts := NewDecodeOptions()
	if opts.FlushFinalRow {
		t.Error("expected FlushFinalRow to default to false")
	}

	if got := DecodeWithOptions("a\n", opts); len(got) != 0 {
		t.Errorf("default options should drop the unterminated row, got %#v", got)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rows     [][]string
		expected string
	}{
		{
			name:     "Nil table encodes to empty string",
			rows:     nil,
			expected: "",
		},
		{
			name:     "Empty table encodes to empty string",
			rows:     [][]string{},
			expected: "",
		},
		{
			name:     "Plain cells",
			rows:     [][]string{{"a", "b"}},
			expected: "a\nb\n\n",
		},
		{
			name:     "Every row gets a terminator",
			rows:     [][]string{{"a"}, {"b"}},
			expected: "a\n\nb\n\n",
		},
		{
			name:     "Empty cell uses the marker",
			rows:     [][]string{{""}},
			expected: "\\\n\n",
		},
		{
			name:     "Embedded newline is escaped",
			rows:     [][]string{{"line1\nline2"}},
			expected: "line1\\nline2\n\n",
		},
		{
			name:     "Backslash is escaped before newline",
			rows:     [][]string{{"a\\b\nc"}},
			expected: "a\\\\b\\nc\n\n",
		},
		{
			name:     "Empty row emits bare terminator",
			rows:     [][]string{{}},
			expected: "\n",
		},
		{
			name:     "Ragged rows are accepted",
			rows:     [][]string{{"a"}, {"b", "c", "d"}},
			expected: "a\n\nb\nc\nd\n\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Encode(tt.rows)
			if got != tt.expected {
				t.Errorf("Encode(%#v) = %q, want %q", tt.rows, got, tt.expected)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tables := [][][]string{
		{{"name", "age", "city"}, {"Alice", "30", "NYC"}, {"Bob", "25", "LA"}},
		{{""}},
		{{"", "", ""}},
		{{"line1\nline2"}},
		{{`back\slash`}},
		{{`a\nb`}}, // literal backslash + n, not a newline
		{{`trailing\`}},
		{{"\n"}, {"\\"}, {"\\n"}},
		{{}},
		{{"mixed"}, {}, {"\\\n\\", ""}},
	}

	for _, table := range tables {
		encoded := Encode(table)
		decoded := Decode(encoded)
		if !reflect.DeepEqual(decoded, table) {
			t.Errorf("round trip mismatch: table %#v encoded to %q decoded to %#v",
				table, encoded, decoded)
		}
	}
}

func TestRoundTrip_EncodedOutputIsStable(t *testing.T) {
	t.Parallel()

	// Encoded output always ends with a row terminator, so encode-decode-encode
	// reproduces the exact same text.
	table := [][]string{{"a", ""}, {"b\nc", `d\e`}}
	once := Encode(table)
	twice := Encode(Decode(once))
	if once != twice {
		t.Errorf("expected stable encoding, got %q then %q", once, twice)
	}
}
