package pipeline

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/inodb/seqdiff/internal/align"
	"github.com/inodb/seqdiff/internal/fasta"
	"github.com/inodb/seqdiff/internal/mutation"
	"github.com/inodb/seqdiff/internal/output"
	"github.com/inodb/seqdiff/internal/translate"
)

// MutationOptions configures a mutation calling run.
type MutationOptions struct {
	InputPath     string // Nucleotide FASTA, one record per sample plus the reference
	ProteinPath   string // Intermediate protein FASTA handed to the aligner
	AlignmentPath string // Alignment written by the aligner
	TablePath     string // Mutation table; empty or "-" for stdout
	ReferenceID   string
	CodeTable     int
	// SkipAlign reads AlignmentPath as an existing protein alignment and
	// skips translation and alignment.
	SkipAlign bool
	Aligner   align.Aligner
	Logger    *zap.Logger
}

// MutationSummary reports what a mutation run processed.
type MutationSummary struct {
	Translated         int
	TranslationsFailed int
	Samples            int
	Mutations          int
}

// RunMutations translates the input, aligns the proteins and writes one
// mutation row per non-reference sample. The table file is only created
// once the alignment has been fully diffed.
func RunMutations(ctx context.Context, opts MutationOptions) (MutationSummary, error) {
	logger := loggerOrNop(opts.Logger)
	var summary MutationSummary

	referenceID := opts.ReferenceID
	if referenceID == "" {
		referenceID = mutation.DefaultReferenceID
	}

	if !opts.SkipAlign {
		translated, failed, err := translateInput(opts, logger)
		if err != nil {
			return summary, err
		}
		summary.Translated = translated
		summary.TranslationsFailed = failed

		aligner := opts.Aligner
		if aligner == nil {
			aligner = align.NewMuscle(align.DefaultMusclePath)
		}
		logger.Info("generating alignment", zap.String("input", opts.ProteinPath))
		if err := aligner.Align(ctx, opts.ProteinPath, opts.AlignmentPath); err != nil {
			return summary, err
		}
	}

	logger.Info("identifying mutations", zap.String("alignment", opts.AlignmentPath))
	records, err := fasta.ReadFile(opts.AlignmentPath)
	if err != nil {
		return summary, fmt.Errorf("read alignment: %w", err)
	}

	rows, err := mutation.BuildTable(records, referenceID)
	if err != nil {
		return summary, fmt.Errorf("%s: %w", opts.AlignmentPath, err)
	}

	out, err := createOutput(opts.TablePath)
	if err != nil {
		return summary, err
	}
	defer out.Close()

	if err := mutation.WriteTable(output.NewMutationWriter(out), rows); err != nil {
		return summary, err
	}

	summary.Samples = len(rows)
	summary.Mutations = lo.SumBy(rows, func(r mutation.Row) int { return len(r.Entries) })
	logger.Info("mutation table saved",
		zap.String("path", opts.TablePath),
		zap.Int("samples", summary.Samples),
		zap.Int("mutations", summary.Mutations))

	return summary, out.Close()
}

// translateInput writes the protein FASTA. Records that fail to translate
// are logged and left out.
func translateInput(opts MutationOptions, logger *zap.Logger) (translated, failed int, err error) {
	code := opts.CodeTable
	if code == 0 {
		code = translate.DefaultTable
	}
	tr, err := translate.New(code)
	if err != nil {
		return 0, 0, err
	}

	records, err := fasta.ReadFile(opts.InputPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read input: %w", err)
	}
	logger.Info("translating sequences",
		zap.String("input", opts.InputPath),
		zap.Int("records", len(records)),
		zap.Int("table", tr.Table()))

	ok, bad := lo.FilterReject(tr.TranslateAll(records), func(r translate.Result, _ int) bool {
		return r.Err == nil
	})
	for _, r := range bad {
		logger.Warn("skipping record that failed to translate",
			zap.String("id", r.Record.ID),
			zap.Error(r.Err))
	}

	proteins := lo.Map(ok, func(r translate.Result, _ int) fasta.Record { return r.Record })
	if err := fasta.WriteFile(opts.ProteinPath, proteins); err != nil {
		return 0, 0, err
	}
	return len(ok), len(bad), nil
}
