package genes

import "fmt"

// ParseError reports a malformed value in the gene table.
// Line is zero when the value was parsed outside of a table.
type ParseError struct {
	Line    int
	Value   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("gene table parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("coverage parse error for %q: %s", e.Value, e.Message)
}

// FormatError reports a gene table whose header lacks a required column.
type FormatError struct {
	Line    int
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("gene table format error at line %d: required columns %v not found in header", e.Line, e.Missing)
}
