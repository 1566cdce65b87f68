package main

import (
	"fmt"
	"os"
	"strings"

	"abtest/internal/config"
	"abtest/internal/logging"
	"abtest/internal/report"
	"abtest/internal/stats"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	format     string
	precision  int
	strict     bool

	// Resolved per invocation in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// newRootCmd builds the command tree. The root command itself takes the
// positional form "<n1> <n2> <mode> <values...>".
func newRootCmd() *cobra.Command {
	logger = zap.NewNop()

	rootCmd := &cobra.Command{
		Use:   "abtest <n1> <n2> <mode> <values...>",
		Short: "Calculate uplift and p-value for an A/B test",
		Long: `abtest compares arm B against arm A with a one-sided z-test and prints
"<p-value> <uplift>", where p-value is Φ(z) for the standardized lift and
uplift is meanB/meanA - 1.

Modes:
` + modeHelp() + `
Flags go before the positional values; the values themselves may be
negative.`,
		Example: `  abtest 100 100 binomial 10 12
  abtest 1000 1000 normal 10 11 25 25
  abtest --format pretty 1000 1000 normal -3 -2.5 4 4`,
		Args:              legacyArgs,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runLegacy,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	pf.StringVar(&configPath, "config", config.DefaultPath, "Config file")
	pf.StringVar(&format, "format", string(report.FormatPlain), fmt.Sprintf("Output format %v", report.Formats))
	pf.IntVar(&precision, "precision", -1, "Digits after the decimal point (-1 = shortest round-trip)")
	pf.BoolVar(&strict, "strict", false, "Reject impossible inputs instead of printing NaN/inf")

	// Positional values may start with '-'.
	rootCmd.Flags().SetInterspersed(false)

	for _, spec := range stats.Modes() {
		rootCmd.AddCommand(newModeCmd(spec))
	}
	rootCmd.AddCommand(newInteractiveCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func modeHelp() string {
	var sb strings.Builder
	for _, spec := range stats.Modes() {
		fmt.Fprintf(&sb, "  %-9s %-22s %s\n", spec.Name, spec.Usage(), spec.Short)
	}
	return sb.String()
}

// setup loads the config, applies flag overrides and builds the logger.
// Precedence: flag > environment > config file > default.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		loaded.Output.Format = format
	}
	if flags.Changed("precision") {
		loaded.Output.Precision = precision
	}
	if flags.Changed("strict") {
		loaded.Validation.Strict = strict
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	base, err := logging.NewWithWriter(cfg.Logging, verbose, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger, _ = logging.ForRun(base)
	logging.Get(logger, logging.CategoryBoot).Debug("configuration loaded",
		zap.String("path", configPath),
		zap.String("format", cfg.Output.Format),
		zap.Int("precision", cfg.Output.Precision),
		zap.Bool("strict", cfg.Validation.Strict))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
