package main

import (
	"fmt"

	"abtest/internal/logging"
	"abtest/internal/report"
	"abtest/internal/stats"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// legacyArgs validates "<n1> <n2> <mode> <values...>".
func legacyArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("requires <n1> <n2> <mode> followed by the mode's values, got %d arg(s)", len(args))
	}
	spec, err := stats.LookupMode(args[2])
	if err != nil {
		return err
	}
	if want := 3 + len(spec.Fields); len(args) != want {
		return fmt.Errorf("%w: %s takes %d values (%s), got %d",
			stats.ErrArity, spec.Name, len(spec.Fields), spec.Usage(), len(args)-3)
	}
	return nil
}

// runLegacy handles "abtest <n1> <n2> <mode> <values...>".
func runLegacy(cmd *cobra.Command, args []string) error {
	exp, err := stats.ParseExperiment(stats.Mode(args[2]), args[0], args[1], args[3:])
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true
	return runExperiment(cmd, exp)
}

// newModeCmd builds "abtest <mode> --n1 N --n2 N <values...>", the form
// with the sample sizes attached to the mode.
func newModeCmd(spec stats.ModeSpec) *cobra.Command {
	var n1, n2 string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s --n1 N --n2 N %s", spec.Name, spec.Usage()),
		Short: spec.Short,
		Long:  spec.Short + "\n\nValues:\n" + fieldHelp(spec),
		Args:  cobra.ExactArgs(len(spec.Fields)),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := stats.ParseExperiment(spec.Name, n1, n2, args)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return runExperiment(cmd, exp)
		},
	}
	cmd.Flags().StringVar(&n1, "n1", "", "Sample size of A (required)")
	cmd.Flags().StringVar(&n2, "n2", "", "Sample size of B (required)")
	_ = cmd.MarkFlagRequired("n1")
	_ = cmd.MarkFlagRequired("n2")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func fieldHelp(spec stats.ModeSpec) string {
	out := ""
	for _, f := range spec.Fields {
		out += fmt.Sprintf("  %-4s %s\n", f.Name, f.Help)
	}
	return out
}

// runExperiment validates (in strict mode), evaluates and prints exp.
func runExperiment(cmd *cobra.Command, exp stats.Experiment) error {
	log := logging.Get(logger, logging.CategoryStats)

	if cfg.Validation.Strict {
		if err := stats.Validate(exp); err != nil {
			log.Debug("experiment rejected", zap.Error(err))
			return fmt.Errorf("strict validation failed: %w", err)
		}
	}

	c, err := stats.Compare(exp)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	log.Debug("experiment evaluated",
		zap.String("mode", string(exp.Mode())),
		zap.Float64("n1", exp.N1),
		zap.Float64("n2", exp.N2),
		zap.Float64s("values", exp.Observations.Values()),
		zap.Float64("std_err", c.StdErr),
		zap.Float64("z", c.Z),
		zap.Float64("p_value", c.Result.PValue),
		zap.Float64("uplift", c.Result.Uplift),
		zap.Bool("degenerate", c.Result.Degenerate()))

	return render(cmd, c)
}

func render(cmd *cobra.Command, c stats.Comparison) error {
	f, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	opts := report.Options{
		Format:    f,
		Precision: cfg.Output.Precision,
		Theme:     cfg.Output.Theme,
	}
	if err := report.Render(cmd.OutOrStdout(), c, opts); err != nil {
		logging.Get(logger, logging.CategoryReport).Error("render failed", zap.Error(err))
		return err
	}
	return nil
}
