package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/seqdiff/internal/align"
	"github.com/inodb/seqdiff/internal/pipeline"
)

const defaultProteinFile = "protein.all.fna"

func newMutationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutations",
		Short: "Translate, align and call amino acid mutations against a reference",
		Long: `Translate nucleotide sequences to protein, align them with MUSCLE and
report every substitution of each sample against the record named
"reference" (see --reference). Gap columns are not reported; positions are
alignment columns.`,
		Example: `  seqdiff mutations -i sequence.all.fna -o protein.aln.fna -t mutations.tsv
  seqdiff mutations -o protein.aln.fna -t mutations.tsv --skip-align
  seqdiff mutations -i seqs.fna -o aln.fna -t muts.tsv --aligner /opt/muscle5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			required := []string{"output", "table"}
			if skip, _ := cmd.Flags().GetBool("skip-align"); !skip {
				required = append(required, "input")
			}
			if err := requireFlags(cmd, required...); err != nil {
				return err
			}
			return runMutations(cmd)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Input nucleotide FASTA file (e.g., sequence.all.fna)")
	cmd.Flags().StringP("output", "o", "", "Output alignment file (e.g., protein.aln.fna)")
	cmd.Flags().StringP("table", "t", "", "Output mutation table file (e.g., mutations.tsv)")
	cmd.Flags().String("protein", defaultProteinFile, "Intermediate protein FASTA file")
	cmd.Flags().Bool("skip-align", false, "Use --output as an existing alignment; skip translation and alignment")
	cmd.Flags().String("reference", "", "Identifier of the reference record (default: reference)")
	cmd.Flags().String("aligner", "", "MUSCLE executable (default: muscle)")
	cmd.Flags().Int("code", 0, "NCBI genetic code table: 1 or 11 (default: 11)")

	_ = viper.BindPFlag(keyReferenceID, cmd.Flags().Lookup("reference"))
	_ = viper.BindPFlag(keyAlignerPath, cmd.Flags().Lookup("aligner"))
	_ = viper.BindPFlag(keyCodeTable, cmd.Flags().Lookup("code"))

	return cmd
}

func runMutations(cmd *cobra.Command) error {
	inputPath, _ := cmd.Flags().GetString("input")
	alignmentPath, _ := cmd.Flags().GetString("output")
	tablePath, _ := cmd.Flags().GetString("table")
	proteinPath, _ := cmd.Flags().GetString("protein")
	skipAlign, _ := cmd.Flags().GetBool("skip-align")

	muscle := align.NewMuscle(viper.GetString(keyAlignerPath))
	muscle.SetOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	muscle.SetLogger(logger)

	if _, err := pipeline.RunMutations(cmd.Context(), pipeline.MutationOptions{
		InputPath:     inputPath,
		ProteinPath:   proteinPath,
		AlignmentPath: alignmentPath,
		TablePath:     tablePath,
		ReferenceID:   viper.GetString(keyReferenceID),
		CodeTable:     viper.GetInt(keyCodeTable),
		SkipAlign:     skipAlign,
		Aligner:       muscle,
		Logger:        logger,
	}); err != nil {
		return err
	}

	if tablePath != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Mutation table saved to %s\n", tablePath)
	}
	return nil
}
