package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/aurex/internal/app"
	"github.com/llehouerou/aurex/internal/errmsg"
	"github.com/llehouerou/aurex/internal/mpris"
	"github.com/llehouerou/aurex/internal/notify"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the player in the background, controlled over MPRIS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			return runDaemon(ctx, a)
		},
	}
}

// runDaemon serves until ctx is done.
func runDaemon(ctx context.Context, a *app.App) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	if a.Config.MPRISEnabled() {
		adapter, err := mpris.New(a.Playback, a.Log)
		if err != nil {
			return errmsg.Wrap(errmsg.OpMPRISStart, err)
		}
		defer adapter.Close()
	}

	if a.Config.NotifyEnabled() {
		notifier, err := notify.New(a.Log)
		if err != nil {
			return errmsg.Wrap(errmsg.OpNotify, err)
		}
		watcher := notify.Watch(a.Playback, notifier, a.Log)
		defer watcher.Close()
	}

	a.Log.Info("daemon running")
	<-ctx.Done()
	a.Log.Info("daemon stopping")
	return nil
}
