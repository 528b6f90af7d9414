package blast

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column positions in BLAST tabular output (0-based).
const (
	colSequence = 0
	colElement  = 1
	colStart    = 8
	colEnd      = 9

	minColumns = colEnd + 1
)

// Parser reads hits from a BLAST tabular file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewParser creates a new hit parser for the given file.
// Use "-" to read from stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hit table: %w", err)
	}

	p := &Parser{file: file}

	buf := bufio.NewReader(file)
	magic, err := buf.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(buf)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = buf
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next hit from the table.
// Returns nil, nil when there are no more hits.
func (p *Parser) Next() (*Hit, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("read hit line: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		// Skip empty lines and comment lines (-outfmt 7 headers)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		return p.parseLine(line)
	}
}

// parseLine parses a single tabular line into a Hit.
func (p *Parser) parseLine(line string) (*Hit, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < minColumns {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, found %d", minColumns, len(fields)),
		}
	}

	start, err := strconv.Atoi(strings.TrimSpace(fields[colStart]))
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid start: %s", fields[colStart]),
		}
	}
	end, err := strconv.Atoi(strings.TrimSpace(fields[colEnd]))
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid end: %s", fields[colEnd]),
		}
	}

	return &Hit{
		Sequence: fields[colSequence],
		Element:  fields[colElement],
		Start:    start,
		End:      end,
	}, nil
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during hit table parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hit table parse error at line %d: %s", e.Line, e.Message)
}
