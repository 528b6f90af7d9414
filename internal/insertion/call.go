// Package insertion classifies mobile-element insertion hits relative to
// annotated genes.
package insertion

import (
	"fmt"
	"strings"
)

// Insertion types
const (
	TypeBefore = "before"
	TypeAfter  = "after"
)

// Call is one classified insertion site.
type Call struct {
	File     string // Assembly file the gene was annotated in
	Sequence string // Sequence carrying both the hit and the gene
	Type     string // TypeBefore or TypeAfter
	Element  string // Mobile element name
	Site     int    // Coverage boundary the insertion sits at
	Gene     string // Gene name
}

// CallWriter defines the interface for writing insertion calls.
type CallWriter interface {
	WriteHeader() error
	Write(c Call) error
	Flush() error
}

// CoveragePolicy decides what happens to a gene whose coverage
// descriptor cannot be parsed.
type CoveragePolicy int

const (
	// CoverageStrict aborts the run on the first malformed descriptor.
	CoverageStrict CoveragePolicy = iota
	// CoverageSkip drops the gene and logs a warning.
	CoverageSkip
)

// ParseCoveragePolicy converts a policy name ("strict" or "skip").
func ParseCoveragePolicy(s string) (CoveragePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return CoverageStrict, nil
	case "skip":
		return CoverageSkip, nil
	default:
		return CoverageStrict, fmt.Errorf("unknown coverage policy %q (want strict or skip)", s)
	}
}

func (p CoveragePolicy) String() string {
	if p == CoverageSkip {
		return "skip"
	}
	return "strict"
}

// Stats summarizes one classification run.
type Stats struct {
	Hits         int
	Calls        int
	Before       int
	After        int
	SkippedGenes int
}
