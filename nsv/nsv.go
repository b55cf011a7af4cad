// Package nsv implements the NSV (Newline-Separated Values) text codec.
//
// NSV is a flat, line-oriented tabular format. Each cell occupies one line,
// and a blank line terminates a row. Cells containing backslashes or newlines
// are stored escaped (`\\` and `\n`), and a zero-length cell is stored as the
// single character `\` so it cannot be mistaken for a row terminator.
//
// Decode and Encode are pure functions over their inputs. They hold no shared
// state and may be called concurrently without coordination.
package nsv

import "strings"

// DecodeOptions configures how Decode handles the end of input.
//
// Example:
//
//	rows := nsv.DecodeWithOptions(text, nsv.NewDecodeOptions().WithFlushFinalRow(true))
type DecodeOptions struct {
	// FlushFinalRow appends the in-progress row at end of input even when the
	// input lacks a terminating blank line. The default (false) reproduces the
	// legacy behavior: cells after the last row terminator are discarded.
	FlushFinalRow bool
}

// NewDecodeOptions creates default decode options (legacy-compatible: no final-row flush).
func NewDecodeOptions() DecodeOptions {
	return DecodeOptions{
		FlushFinalRow: false,
	}
}

// WithFlushFinalRow sets whether an unterminated final row is kept.
func (o DecodeOptions) WithFlushFinalRow(flush bool) DecodeOptions {
	o.FlushFinalRow = flush
	return o
}

// Decode parses NSV text into rows of string cells.
//
// It never fails: empty input yields an empty (nil-length) result, and
// malformed escape sequences are preserved as literal text. A file that does
// not end with a row terminator loses the cells of its final row; use
// DecodeWithOptions with FlushFinalRow to keep them instead.
func Decode(text string) [][]string {
	return DecodeWithOptions(text, NewDecodeOptions())
}

// DecodeWithOptions parses NSV text into rows of string cells using the given options.
//
// The input is scanned left to right. Every newline either closes a cell line
// (when preceded by at least one character since the previous newline) or acts
// as a row terminator (when it immediately follows the previous newline or
// starts the input). Scanning byte-wise is safe for UTF-8 input because both
// grammar characters ('\n' and '\\') are ASCII.
func DecodeWithOptions(text string, opts DecodeOptions) [][]string {
	rows := make([][]string, 0)
	row := make([]string, 0)
	start := 0

	for pos := 0; pos < len(text); pos++ {
		if text[pos] != '\n' {
			continue
		}
		if pos > start {
			row = append(row, unescapeCell(text[start:pos]))
		} else {
			// Blank line: terminate the current row, even an empty one.
			rows = append(rows, row)
			row = make([]string, 0)
		}
		start = pos + 1
	}

	if opts.FlushFinalRow {
		if start < len(text) {
			// Trailing segment with no newline at all still encodes one cell.
			row = append(row, unescapeCell(text[start:]))
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

// Encode renders rows of string cells as NSV text.
//
// Encode is total: it accepts any value, including rows of differing lengths,
// and never fails. Every row is followed by a blank-line terminator, the last
// row included, so encoded output always survives a Decode round trip.
func Encode(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			b.WriteString(escapeCell(cell))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// unescapeCell decodes one non-empty cell line.
//
// A single forward scan replaces the historical two-pass
// placeholder substitution: `\\` and `\n` resolve left to right, so a
// sequence like `\\n` yields a literal backslash followed by a literal 'n',
// never a newline. A backslash before any other character, or at end of the
// segment, stays literal.
func unescapeCell(segment string) string {
	if segment == `\` {
		// Reserved marker for the empty cell.
		return ""
	}
	if !strings.ContainsRune(segment, '\\') {
		return segment
	}

	var b strings.Builder
	b.Grow(len(segment))
	sawBackslash := false
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if sawBackslash {
			switch c {
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			default:
				b.WriteByte('\\')
				b.WriteByte(c)
			}
			sawBackslash = false
			continue
		}
		if c == '\\' {
			sawBackslash = true
			continue
		}
		b.WriteByte(c)
	}
	if sawBackslash {
		b.WriteByte('\\')
	}
	return b.String()
}

// escapeCell encodes one cell value as a single line.
//
// Backslashes are doubled before newlines are rewritten, mirroring the decode
// order: the backslash introduced by a newline escape must not itself be
// re-escaped.
func escapeCell(cell string) string {
	if cell == "" {
		return `\`
	}
	if !strings.ContainsAny(cell, "\\\n") {
		return cell
	}
	escaped := strings.ReplaceAll(cell, `\`, `\\`)
	return strings.ReplaceAll(escaped, "\n", `\n`)
}
