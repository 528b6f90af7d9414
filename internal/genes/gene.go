// Package genes loads annotated gene tables and indexes them by sequence.
package genes

import (
	"fmt"
	"strconv"
	"strings"
)

// Gene represents one annotated gene region on an assembled sequence.
type Gene struct {
	File     string // Source assembly file (#FILE column)
	Sequence string // Contig or sequence identifier
	Name     string // Gene name (e.g., blaKPC-2)
	Start    int    // Gene start position (1-based)
	End      int    // Gene end position (1-based, inclusive)
	Coverage string // Raw coverage descriptor, "start-end/length"
}

// CoverageRange is the part of the reference gene model that aligned
// against the assembled sequence.
type CoverageRange struct {
	Start  int // First covered base of the reference (1-based)
	End    int // Last covered base of the reference (1-based, inclusive)
	Length int // Full length of the reference gene model
}

// ParseCoverage decodes a "start-end/length" coverage descriptor.
// No range checks are made; use Validate for that.
func ParseCoverage(s string) (CoverageRange, error) {
	s = strings.TrimSpace(s)

	rangePart, lengthPart, ok := strings.Cut(s, "/")
	if !ok {
		return CoverageRange{}, &ParseError{Value: s, Message: "missing '/' separator"}
	}

	bounds := strings.Split(rangePart, "-")
	if len(bounds) != 2 {
		return CoverageRange{}, &ParseError{Value: s, Message: "expected start-end before '/'"}
	}

	start, err := strconv.Atoi(bounds[0])
	if err != nil {
		return CoverageRange{}, &ParseError{Value: s, Message: fmt.Sprintf("invalid start %q", bounds[0])}
	}
	end, err := strconv.Atoi(bounds[1])
	if err != nil {
		return CoverageRange{}, &ParseError{Value: s, Message: fmt.Sprintf("invalid end %q", bounds[1])}
	}
	length, err := strconv.Atoi(lengthPart)
	if err != nil {
		return CoverageRange{}, &ParseError{Value: s, Message: fmt.Sprintf("invalid length %q", lengthPart)}
	}

	return CoverageRange{Start: start, End: end, Length: length}, nil
}

// CoverageRange parses the gene's coverage descriptor.
func (g *Gene) CoverageRange() (CoverageRange, error) {
	return ParseCoverage(g.Coverage)
}

// Validate checks 1 <= Start <= End <= Length.
func (c CoverageRange) Validate() error {
	if c.Start < 1 || c.Start > c.End || c.End > c.Length {
		return fmt.Errorf("coverage %s out of range", c)
	}
	return nil
}

// HasUpstreamFlank reports whether the alignment misses the first reference base.
func (c CoverageRange) HasUpstreamFlank() bool {
	return c.Start > 1
}

// HasDownstreamFlank reports whether the alignment stops before the last reference base.
func (c CoverageRange) HasDownstreamFlank() bool {
	return c.End < c.Length
}

func (c CoverageRange) String() string {
	return fmt.Sprintf("%d-%d/%d", c.Start, c.End, c.Length)
}
