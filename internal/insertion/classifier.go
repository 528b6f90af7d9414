package insertion

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/seqdiff/internal/blast"
	"github.com/inodb/seqdiff/internal/genes"
)

// GeneLookup defines the interface for finding genes on a sequence.
type GeneLookup interface {
	RecordsFor(sequence string) []*genes.Gene
}

// Classifier places insertion hits before or after annotated genes.
type Classifier struct {
	genes  GeneLookup
	policy CoveragePolicy
	logger *zap.Logger
	stats  Stats
}

// NewClassifier creates a classifier over the given gene lookup.
func NewClassifier(g GeneLookup) *Classifier {
	return &Classifier{
		genes:  g,
		logger: zap.NewNop(),
	}
}

// SetCoveragePolicy configures how malformed coverage descriptors are handled.
func (c *Classifier) SetCoveragePolicy(p CoveragePolicy) {
	c.policy = p
}

// SetLogger sets the logger for warning and info messages.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Stats returns counters accumulated since the classifier was created.
func (c *Classifier) Stats() Stats {
	return c.stats
}

// Classify returns the calls for one hit against every gene on its sequence.
// Calls follow gene table order, with before preceding after for a gene.
func (c *Classifier) Classify(hit *blast.Hit) ([]Call, error) {
	c.stats.Hits++

	var calls []Call
	for _, g := range c.genes.RecordsFor(hit.Sequence) {
		cov, err := g.CoverageRange()
		if err == nil && c.policy == CoverageSkip {
			// strict mode classifies out-of-range descriptors as parsed
			err = cov.Validate()
		}
		if err != nil {
			if c.policy == CoverageSkip {
				c.stats.SkippedGenes++
				c.logger.Warn("skipping gene with unusable coverage",
					zap.String("sequence", g.Sequence),
					zap.String("gene", g.Name),
					zap.String("coverage", g.Coverage),
					zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("gene %s on %s: %w", g.Name, g.Sequence, err)
		}

		if before, ok := classifyBefore(hit, g, cov); ok {
			calls = append(calls, before)
			c.stats.Before++
		}
		if after, ok := classifyAfter(hit, g, cov); ok {
			calls = append(calls, after)
			c.stats.After++
		}
	}

	c.stats.Calls += len(calls)
	return calls, nil
}

// classifyBefore applies the upstream rule. The gene start is shifted by the
// unaligned upstream flank to get the threshold on the sequence.
func classifyBefore(hit *blast.Hit, g *genes.Gene, cov genes.CoverageRange) (Call, bool) {
	if !cov.HasUpstreamFlank() {
		return Call{}, false
	}
	threshold := g.Start - cov.Start
	if hit.End <= threshold {
		return Call{}, false
	}
	return newCall(hit, g, TypeBefore, cov.Start), true
}

// classifyAfter applies the downstream rule. The gene end is extended by the
// unaligned downstream flank.
func classifyAfter(hit *blast.Hit, g *genes.Gene, cov genes.CoverageRange) (Call, bool) {
	if !cov.HasDownstreamFlank() {
		return Call{}, false
	}
	threshold := g.End + (cov.Length - cov.End)
	if hit.Start >= threshold {
		return Call{}, false
	}
	return newCall(hit, g, TypeAfter, cov.End), true
}

func newCall(hit *blast.Hit, g *genes.Gene, typ string, site int) Call {
	return Call{
		File:     g.File,
		Sequence: hit.Sequence,
		Type:     typ,
		Element:  hit.Element,
		Site:     site,
		Gene:     g.Name,
	}
}

// ClassifyAll classifies every hit from the parser in input order and
// writes the resulting calls. The header is written by the caller.
func (c *Classifier) ClassifyAll(parser blast.HitParser, writer CallWriter) error {
	for {
		hit, err := parser.Next()
		if err != nil {
			return fmt.Errorf("read hit: %w", err)
		}
		if hit == nil {
			break
		}

		calls, err := c.Classify(hit)
		if err != nil {
			return fmt.Errorf("classify hit at line %d: %w", parser.LineNumber(), err)
		}
		for _, call := range calls {
			if err := writer.Write(call); err != nil {
				return fmt.Errorf("write call: %w", err)
			}
		}
	}

	if c.stats.Hits == 0 {
		c.logger.Info("0 hits processed")
	}

	return writer.Flush()
}
