package main

import (
	"fmt"

	"abtest/cmd/abtest/ui"
	"abtest/internal/logging"
	"abtest/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInteractiveCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Enter an experiment in a terminal form",
		Long: `Opens a form for the sample sizes and the mode's values. ctrl+t switches
between binomial and normal, enter moves to the next field and submits on
the last one, esc quits. The last result is printed in the configured
format on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := stats.LookupMode(mode); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return runInteractive(cmd, stats.Mode(mode))
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(stats.ModeBinomial), "Initial mode")
	return cmd
}

func runInteractive(cmd *cobra.Command, mode stats.Mode) error {
	log := logging.Get(logger, logging.CategoryUI)

	model := ui.NewFormModel(ui.Options{
		Mode:      mode,
		Strict:    cfg.Validation.Strict,
		Precision: cfg.Output.Precision,
	})
	p := tea.NewProgram(model,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive form failed: %w", err)
	}

	form, ok := final.(ui.FormModel)
	if !ok {
		return nil
	}
	c, ok := form.Result()
	if !ok {
		log.Debug("form closed without a result")
		return nil
	}
	log.Debug("form submitted", zap.String("mode", string(c.Experiment.Mode())))
	return render(cmd, c)
}
