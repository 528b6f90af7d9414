package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/seqdiff/internal/insertion"
	"github.com/inodb/seqdiff/internal/pipeline"
)

func newInsertionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insertions",
		Short: "Determine IS insertion sites relative to gene locations",
		Long: `Classify IS element hits (BLAST -outfmt 6) as inserted before or after
annotated genes, using each gene's coverage descriptor (start-end/length)
to locate the gene's true edges on the sequence.`,
		Example: `  seqdiff insertions -i is_blastn.tsv -g genes.tsv -o insertion_sites.tsv
  seqdiff insertions -i is_blastn.tsv -g genes.tsv --coverage-policy skip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "input", "gene"); err != nil {
				return err
			}
			return runInsertions(cmd)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Input IS blastn results file (outfmt 6)")
	cmd.Flags().StringP("gene", "g", "", "Input gene results file")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("coverage-policy", "", "Malformed coverage handling: strict or skip")
	_ = viper.BindPFlag(keyCoveragePolicy, cmd.Flags().Lookup("coverage-policy"))

	return cmd
}

func runInsertions(cmd *cobra.Command) error {
	hitsPath, _ := cmd.Flags().GetString("input")
	genesPath, _ := cmd.Flags().GetString("gene")
	outputPath, _ := cmd.Flags().GetString("output")

	policy, err := insertion.ParseCoveragePolicy(viper.GetString(keyCoveragePolicy))
	if err != nil {
		return &usageError{err}
	}

	if _, err := pipeline.RunInsertions(pipeline.InsertionOptions{
		HitsPath:   hitsPath,
		GenesPath:  genesPath,
		OutputPath: outputPath,
		Policy:     policy,
		Logger:     logger,
	}); err != nil {
		return err
	}

	if outputPath != "" && outputPath != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Results saved to %s\n", outputPath)
	}
	return nil
}
