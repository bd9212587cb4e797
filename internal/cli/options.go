package cli

import (
	"github.com/spf13/cobra"

	"github.com/checkfox/go_carprice/internal/config"
	"github.com/checkfox/go_carprice/internal/services"
	"github.com/checkfox/go_carprice/internal/views"
)

// OptionsCmd returns the options command
func OptionsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the brands, fuel types and transmissions offered by the backend",
		Long: `Load the three reference lists the estimate form offers as choices.

A list that fails to load is shown empty with a single advisory; the
command still succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := newActivationContext(cmd.Context())
			view := views.NewEstimateView(cmd.OutOrStdout(), cfg.Display.CurrencySymbol)

			view.RenderLoading()
			snapshot := services.NewReferenceDataLoader(newAPIClient(cfg)).Load(ctx)
			view.RenderOptions(snapshot)
			return nil
		},
	}
}
