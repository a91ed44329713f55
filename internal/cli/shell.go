package cli

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/aurex/internal/app"
	"github.com/llehouerou/aurex/internal/config"
	"github.com/llehouerou/aurex/internal/shell"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Control playback from an interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Start(cmd.Context()); err != nil {
				return err
			}

			history, err := config.HistoryPath()
			if err != nil {
				a.Log.WithError(err).Warn("shell history disabled")
				history = ""
			}
			return shell.New(a.Playback, a.Catalog, cmd.OutOrStdout()).Run(history)
		},
	}
}
