package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/aurex/internal/app"
	"github.com/llehouerou/aurex/internal/config"
	"github.com/llehouerou/aurex/internal/errmsg"
	"github.com/llehouerou/aurex/internal/mpris"
	"github.com/llehouerou/aurex/internal/stderr"
	"github.com/llehouerou/aurex/internal/ui/nowplaying"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logFile, err := config.LogPath()
			if err != nil {
				logFile = ""
			}
			a, err := openApp(cmd, app.Options{LogFile: logFile})
			if err != nil {
				return err
			}
			defer a.Close()

			capture, err := stderr.Start(a.Log)
			if err != nil {
				a.Log.WithError(err).Warn("stderr capture disabled")
			} else {
				defer capture.Stop()
			}

			if err := a.Start(cmd.Context()); err != nil {
				return err
			}

			if a.Config.MPRISEnabled() {
				if adapter, err := mpris.New(a.Playback, a.Log); err != nil {
					a.Log.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
				} else {
					defer adapter.Close()
				}
			}

			if id := lo.Must(cmd.Flags().GetInt64("playlist")); id > 0 {
				tracks, err := a.Catalog.PlaylistTracks(id)
				if err != nil {
					return errmsg.Wrap(errmsg.OpPlaylistLoad, err)
				}
				a.Playback.PlayList(tracks, 0)
			}

			model := nowplaying.New(a.Playback, a.Catalog)
			defer model.Close()

			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().Int64P("playlist", "p", 0, "start playing this playlist")
	return cmd
}
