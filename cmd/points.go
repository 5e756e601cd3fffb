package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/eora-ai/eora/internal/config"
	"github.com/eora-ai/eora/internal/controller"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show the points balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(cfg *config.Config, backend controller.Backend) error {
			return showPoints(cmd.Context(), cmd.OutOrStdout(), cfg, backend)
		})
	},
}

func init() {
	rootCmd.AddCommand(pointsCmd)
}

// showPoints prints the balance. A failed fetch prints the default balance
// and is not an error, matching what the TUI header shows.
func showPoints(ctx context.Context, out io.Writer, cfg *config.Config, backend controller.Backend) error {
	ctrl := controller.New(backend, controller.Options{
		View:   newTextView(out, false),
		Store:  cfg,
		UserID: cfg.GetUserID(),
	})
	ctrl.UpdatePoints(ctx, 0)
	return nil
}
