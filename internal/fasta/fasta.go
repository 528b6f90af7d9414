// Package fasta reads and writes FASTA sequence records.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry.
type Record struct {
	ID          string // First whitespace-delimited token of the header
	Description string // Remainder of the header line
	Seq         string // Sequence with line breaks removed
}

// ReadFile loads all records from a FASTA file in file order.
// Gzipped files are detected from their magic bytes.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	buf := bufio.NewReader(f)
	var reader io.Reader = buf

	magic, err := buf.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(buf)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Read(reader)
}

// Read parses FASTA content into records in input order.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long sequences
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	var records []Record
	var current *Record
	var seq strings.Builder
	lineNumber := 0

	flush := func() {
		if current != nil {
			current.Seq = seq.String()
			records = append(records, *current)
		}
		seq.Reset()
	}

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, ">") {
			flush()
			id, desc := parseHeader(line)
			current = &Record{ID: id, Description: desc}
			continue
		}
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if current == nil {
			return nil, &FormatError{Line: lineNumber, Message: "sequence data before first header"}
		}
		// residues only; whitespace inside a line is not part of the sequence
		seq.WriteString(strings.Join(strings.Fields(line), ""))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	return records, nil
}

// parseHeader splits a header line into its identifier and description.
func parseHeader(header string) (id, desc string) {
	header = strings.TrimSpace(strings.TrimPrefix(header, ">"))
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return "", ""
	}
	id = fields[0]
	desc = strings.TrimSpace(strings.TrimPrefix(header, id))
	return id, desc
}

// Writer writes FASTA records with the whole sequence on one line.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a new FASTA writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes a single record.
func (fw *Writer) Write(r Record) error {
	_, err := fmt.Fprintf(fw.w, ">%s\n%s\n", r.ID, r.Seq)
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (fw *Writer) Flush() error {
	return fw.w.Flush()
}

// WriteFile writes records to path, replacing any existing file.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create FASTA file: %w", err)
	}

	w := NewWriter(f)
	for _, r := range records {
		if err := w.Write(r); err != nil {
			f.Close()
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush FASTA file: %w", err)
	}
	return f.Close()
}

// FormatError reports malformed FASTA content.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("FASTA format error at line %d: %s", e.Line, e.Message)
}
