// Package cli implements the aurex command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/aurex/internal/app"
	"github.com/llehouerou/aurex/internal/errmsg"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aurex",
		Short:         "A music player for a local library",
		Long:          "aurex plays tracks from a local music catalog, from an interactive shell, a terminal UI or as a background daemon.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "C", "", "read this config file after the default ones")

	root.AddCommand(
		newShellCmd(),
		newDaemonCmd(),
		newTUICmd(),
		newImportCmd(),
		newTracksCmd(),
		newArtistsCmd(),
		newAlbumsCmd(),
		newRemoveCmd(),
		newPlaylistsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(errmsg.Message(err)))
		os.Exit(1)
	}
}

// openApp opens the app with the --config flag of cmd.
func openApp(cmd *cobra.Command, opts app.Options) (*app.App, error) {
	opts.ConfigFile = lo.Must(cmd.Flags().GetString("config"))
	return app.Open(opts)
}
