package cli

import (
	"github.com/spf13/cobra"

	"github.com/checkfox/go_carprice/internal/views"
)

// RunLanding renders the landing screen. It is the root command's action.
func RunLanding(cmd *cobra.Command, args []string) error {
	views.RenderLanding(cmd.OutOrStdout(), cmd.Root().Name())
	return nil
}
