package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/seqdiff/internal/blast"
	"github.com/inodb/seqdiff/internal/genes"
	"github.com/inodb/seqdiff/internal/insertion"
	"github.com/inodb/seqdiff/internal/output"
)

// InsertionOptions configures an insertion site run.
type InsertionOptions struct {
	HitsPath   string // BLAST tabular hits (-outfmt 6)
	GenesPath  string // Annotated gene table with header
	OutputPath string // Insertion site table; empty or "-" for stdout
	Policy     insertion.CoveragePolicy
	Logger     *zap.Logger
}

// RunInsertions classifies every hit against the gene table and writes the
// insertion site table.
func RunInsertions(opts InsertionOptions) (insertion.Stats, error) {
	logger := loggerOrNop(opts.Logger)

	idx, err := genes.LoadIndex(opts.GenesPath)
	if err != nil {
		return insertion.Stats{}, fmt.Errorf("load gene table: %w", err)
	}
	logger.Info("loaded gene table",
		zap.String("path", opts.GenesPath),
		zap.Int("genes", idx.Len()),
		zap.Int("sequences", len(idx.Sequences())))

	parser, err := blast.NewParser(opts.HitsPath)
	if err != nil {
		return insertion.Stats{}, err
	}
	defer parser.Close()

	classifier := insertion.NewClassifier(idx)
	classifier.SetCoveragePolicy(opts.Policy)
	classifier.SetLogger(logger)

	// Calls are collected before the output is created so a failed run
	// leaves no partial table behind.
	var buf callBuffer
	if err := classifier.ClassifyAll(parser, &buf); err != nil {
		return classifier.Stats(), err
	}

	out, err := createOutput(opts.OutputPath)
	if err != nil {
		return classifier.Stats(), err
	}
	defer out.Close()

	writer := output.NewInsertionWriter(out)
	if err := writer.WriteHeader(); err != nil {
		return classifier.Stats(), fmt.Errorf("write header: %w", err)
	}
	for _, call := range buf.calls {
		if err := writer.Write(call); err != nil {
			return classifier.Stats(), fmt.Errorf("write call: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return classifier.Stats(), fmt.Errorf("flush output: %w", err)
	}

	stats := classifier.Stats()
	logger.Info("classified insertion hits",
		zap.Int("hits", stats.Hits),
		zap.Int("calls", stats.Calls),
		zap.Int("before", stats.Before),
		zap.Int("after", stats.After),
		zap.Int("skipped_genes", stats.SkippedGenes))

	return stats, out.Close()
}

// callBuffer is an in-memory insertion.CallWriter.
type callBuffer struct {
	calls []insertion.Call
}

func (b *callBuffer) WriteHeader() error { return nil }

func (b *callBuffer) Write(c insertion.Call) error {
	b.calls = append(b.calls, c)
	return nil
}

func (b *callBuffer) Flush() error { return nil }
