package genes

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Gene table column names
const (
	ColFile     = "#FILE"
	ColSequence = "SEQUENCE"
	ColStart    = "START"
	ColEnd      = "END"
	ColGene     = "GENE"
	ColCoverage = "COVERAGE"
)

// ColumnIndices holds the positions of the gene table columns.
type ColumnIndices struct {
	File     int
	Sequence int
	Start    int
	End      int
	Gene     int
	Coverage int
}

// Loader reads a tab-delimited gene table with a header row.
type Loader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    ColumnIndices
}

// NewLoader opens the gene table at path. Gzipped tables are detected
// from their magic bytes.
func NewLoader(path string) (*Loader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene table: %w", err)
	}

	l := &Loader{file: file}

	buf := bufio.NewReader(file)
	magic, err := buf.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		l.gzipReader, err = gzip.NewReader(buf)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		l.reader = bufio.NewReader(l.gzipReader)
	} else {
		l.reader = buf
	}

	if err := l.parseHeader(); err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

// NewLoaderFromReader creates a loader from an io.Reader.
func NewLoaderFromReader(r io.Reader) (*Loader, error) {
	l := &Loader{reader: bufio.NewReader(r)}
	if err := l.parseHeader(); err != nil {
		return nil, err
	}
	return l, nil
}

// parseHeader reads the first non-empty line and resolves column indices.
func (l *Loader) parseHeader() error {
	for {
		line, err := l.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return &FormatError{Line: l.lineNumber, Missing: requiredColumns}
			}
			return fmt.Errorf("read header: %w", err)
		}
		l.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		return l.parseColumnIndices(line)
	}
}

var requiredColumns = []string{ColFile, ColSequence, ColStart, ColEnd, ColGene, ColCoverage}

func (l *Loader) parseColumnIndices(headerLine string) error {
	l.columns = ColumnIndices{-1, -1, -1, -1, -1, -1}

	for i, col := range strings.Split(headerLine, "\t") {
		switch strings.TrimSpace(col) {
		case ColFile:
			l.columns.File = i
		case ColSequence:
			l.columns.Sequence = i
		case ColStart:
			l.columns.Start = i
		case ColEnd:
			l.columns.End = i
		case ColGene:
			l.columns.Gene = i
		case ColCoverage:
			l.columns.Coverage = i
		}
	}

	indices := []int{
		l.columns.File, l.columns.Sequence, l.columns.Start,
		l.columns.End, l.columns.Gene, l.columns.Coverage,
	}
	var missing []string
	for i, idx := range indices {
		if idx == -1 {
			missing = append(missing, requiredColumns[i])
		}
	}
	if len(missing) > 0 {
		return &FormatError{Line: l.lineNumber, Missing: missing}
	}
	return nil
}

// Next reads the next gene from the table.
// Returns nil, nil when there are no more genes.
func (l *Loader) Next() (*Gene, error) {
	for {
		line, err := l.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("read gene line: %w", err)
		}
		l.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return l.parseLine(line)
	}
}

// parseLine parses a single data line into a Gene.
func (l *Loader) parseLine(line string) (*Gene, error) {
	fields := strings.Split(line, "\t")

	minCols := max(l.columns.File, l.columns.Sequence, l.columns.Start,
		l.columns.End, l.columns.Gene, l.columns.Coverage)
	if len(fields) <= minCols {
		return nil, &ParseError{
			Line:    l.lineNumber,
			Value:   line,
			Message: fmt.Sprintf("expected at least %d columns, found %d", minCols+1, len(fields)),
		}
	}

	start, err := strconv.Atoi(strings.TrimSpace(fields[l.columns.Start]))
	if err != nil {
		return nil, &ParseError{
			Line:    l.lineNumber,
			Value:   fields[l.columns.Start],
			Message: fmt.Sprintf("invalid start: %s", fields[l.columns.Start]),
		}
	}
	end, err := strconv.Atoi(strings.TrimSpace(fields[l.columns.End]))
	if err != nil {
		return nil, &ParseError{
			Line:    l.lineNumber,
			Value:   fields[l.columns.End],
			Message: fmt.Sprintf("invalid end: %s", fields[l.columns.End]),
		}
	}

	return &Gene{
		File:     fields[l.columns.File],
		Sequence: fields[l.columns.Sequence],
		Name:     fields[l.columns.Gene],
		Start:    start,
		End:      end,
		Coverage: fields[l.columns.Coverage],
	}, nil
}

// LoadAll reads every remaining gene in file order.
func (l *Loader) LoadAll() ([]*Gene, error) {
	var genes []*Gene
	for {
		g, err := l.Next()
		if err != nil {
			return nil, err
		}
		if g == nil {
			return genes, nil
		}
		genes = append(genes, g)
	}
}

// LineNumber returns the current line number being processed.
func (l *Loader) LineNumber() int {
	return l.lineNumber
}

// Close closes the loader and underlying file.
func (l *Loader) Close() error {
	if l.gzipReader != nil {
		l.gzipReader.Close()
	}
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LoadIndex reads the gene table at path and indexes it by sequence.
func LoadIndex(path string) (*Index, error) {
	l, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	genes, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return NewIndex(genes), nil
}
