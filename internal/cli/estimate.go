package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/checkfox/go_carprice/internal/config"
	"github.com/checkfox/go_carprice/internal/estimator"
	"github.com/checkfox/go_carprice/internal/logger"
	"github.com/checkfox/go_carprice/internal/models"
	"github.com/checkfox/go_carprice/internal/services"
	"github.com/checkfox/go_carprice/internal/views"
)

// ErrEstimateFailed is returned when the last submission ended in FAILED
var ErrEstimateFailed = errors.New("price estimate failed")

// EstimateCmd returns the estimate command
func EstimateCmd(cfg *config.Config) *cobra.Command {
	var noInput bool

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the price of a used car",
		Long: `Load the selection options, collect the six car attributes and ask the
backend for a price estimate.

Values given as flags are used as-is. When stdin is a terminal the remaining
fields are prompted for; a number picks a listed choice and any other text
is sent verbatim. After a result you may edit the values and estimate again.

Examples:
  carprice estimate
  carprice estimate --brand maruti --year 2018 --fuel-type petrol \
    --transmission manual --km-driven 50000 --owner 0 --no-input`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, cfg, noInput)
		},
	}

	for _, f := range models.AllFields() {
		cmd.Flags().String(flagName(f), "", fmt.Sprintf("%s. %s", f.Label(), f.Hint()))
	}
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt; submit the flag values once")

	return cmd
}

func runEstimate(cmd *cobra.Command, cfg *config.Config, noInput bool) error {
	ctx := newActivationContext(cmd.Context())
	out := cmd.OutOrStdout()

	view := views.NewEstimateView(out, cfg.Display.CurrencySymbol)
	view.RenderHeader()
	view.RenderLoading()

	apiClient := newAPIClient(cfg)
	snapshot := services.NewReferenceDataLoader(apiClient).Load(ctx)
	view.RenderOptions(snapshot)

	controller, err := estimator.NewController(estimator.ControllerConfig{Predictor: apiClient})
	if err != nil {
		return err
	}
	controller.OnStateChange(view.RenderState)

	for _, f := range models.AllFields() {
		value, _ := cmd.Flags().GetString(flagName(f))
		if err := controller.SetField(f, value); err != nil {
			return err
		}
	}

	if noInput || !isInteractive(cmd.InOrStdin()) {
		view.RenderSummary(controller.Draft())
		view.RenderSubmitControl(controller.State())
		state, err := controller.Submit(ctx)
		if err != nil {
			return err
		}
		return resultError(state)
	}

	prompter := views.NewPrompter(cmd.InOrStdin(), out)
	onlyEmpty := true
	for {
		err := promptDraft(prompter, controller, snapshot, onlyEmpty)
		inputClosed := errors.Is(err, io.EOF)
		if err != nil && !inputClosed {
			return err
		}

		view.RenderSummary(controller.Draft())
		view.RenderSubmitControl(controller.State())
		state, err := controller.Submit(ctx)
		if err != nil {
			return err
		}
		if inputClosed {
			return resultError(state)
		}

		again, err := prompter.Confirm("Estimate again?")
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if !again {
			return resultError(state)
		}
		logger.Debug(ctx, "Editing draft for another estimate")
		onlyEmpty = false
	}
}

// promptDraft asks for draft values, skipping filled fields when onlyEmpty is set
func promptDraft(p *views.Prompter, c *estimator.Controller, snapshot models.OptionSnapshot, onlyEmpty bool) error {
	for _, f := range models.AllFields() {
		current := c.Draft().Get(f)
		if onlyEmpty && current != "" {
			continue
		}

		var choices []string
		if list, ok := f.ReferenceList(); ok {
			choices = snapshot.Choices(list)
		}

		value, err := p.AskField(f, choices, current)
		if err != nil {
			return err
		}
		if err := c.SetField(f, value); err != nil {
			return err
		}
	}
	return nil
}

func resultError(state models.SubmissionState) error {
	if msg, ok := state.Message(); ok {
		return fmt.Errorf("%w: %s", ErrEstimateFailed, msg)
	}
	return nil
}

func flagName(f models.Field) string {
	return strings.ReplaceAll(f.FormKey(), "_", "-")
}
