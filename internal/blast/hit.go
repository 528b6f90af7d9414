// Package blast reads BLAST tabular (-outfmt 6) alignment hits.
package blast

// Hit is one mobile-element alignment against an assembled sequence.
type Hit struct {
	Sequence string // Query sequence identifier (column 1)
	Element  string // Mobile element name (column 2)
	Start    int    // Subject (element) alignment start, sstart (column 9)
	End      int    // Subject (element) alignment end, send (column 10)
}

// HitParser is the interface for readers that produce hits.
type HitParser interface {
	// Next reads the next hit.
	// Returns nil, nil when there are no more hits.
	Next() (*Hit, error)

	// Close closes the parser and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}
