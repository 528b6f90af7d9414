// Package main provides the seqdiff command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/seqdiff/internal/align"
	"github.com/inodb/seqdiff/internal/insertion"
	"github.com/inodb/seqdiff/internal/mutation"
	"github.com/inodb/seqdiff/internal/translate"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config keys
const (
	keyCoveragePolicy = "coverage_policy"
	keyReferenceID    = "reference_id"
	keyAlignerPath    = "aligner.path"
	keyCodeTable      = "translation.table"
	keyVerbose        = "verbose"
)

// usageError marks errors caused by bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var (
	cfgFile string
	logger  = zap.NewNop()
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	_ = logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var ue *usageError
	var ce *align.CollaboratorError
	switch {
	case errors.As(err, &ue):
		return ExitUsage
	case errors.As(err, &ce) && ce.NotInstalled():
		fmt.Fprintf(os.Stderr, "Hint: install MUSCLE or set --aligner to its path\n")
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(os.Stderr, "Hint: Check that the file path is correct\n")
	}
	return ExitError
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seqdiff",
		Short: "Compare sequence features against a reference frame",
		Long: `seqdiff classifies IS element insertion sites relative to annotated genes
and calls per-sample amino acid substitutions from a protein alignment.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd); err != nil {
				return err
			}
			return initLogger()
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err}
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.seqdiff.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	_ = viper.BindPFlag(keyVerbose, cmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault(keyCoveragePolicy, insertion.CoverageStrict.String())
	viper.SetDefault(keyReferenceID, mutation.DefaultReferenceID)
	viper.SetDefault(keyAlignerPath, align.DefaultMusclePath)
	viper.SetDefault(keyCodeTable, translate.DefaultTable)

	cmd.AddCommand(newInsertionsCmd())
	cmd.AddCommand(newMutationsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// initConfig reads ~/.seqdiff.yaml (or --config) and SEQDIFF_* variables.
func initConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".seqdiff")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("seqdiff")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// initLogger builds a console logger on stderr.
func initLogger() error {
	level := zapcore.InfoLevel
	if viper.GetBool(keyVerbose) {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seqdiff version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// requireFlags reports missing required string flags as a usage error.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if v, _ := cmd.Flags().GetString(name); v == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return &usageError{fmt.Errorf("required flags not set: %s", strings.Join(missing, ", "))}
	}
	return nil
}

// defaultConfigPath returns ~/.seqdiff.yaml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".seqdiff.yaml"), nil
}
