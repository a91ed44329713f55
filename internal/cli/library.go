package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/aurex/internal/app"
	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/engine"
	"github.com/llehouerou/aurex/internal/errmsg"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [path...]",
		Short: "Add music files to the catalog",
		Long:  "Add music files to the catalog. Directories are scanned recursively. Without arguments the library.sources of the configuration are imported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			paths := args
			if len(paths) == 0 {
				paths = a.Config.Library.Sources
			}
			if len(paths) == 0 {
				return errmsg.Wrap(errmsg.OpParseArgs, errors.New("no path given and library.sources is empty"))
			}

			a.Catalog.SetDurationFunc(engine.Duration)
			res, err := a.Catalog.Import(paths...)
			if err != nil {
				return errmsg.Wrap(errmsg.OpLibraryImport, err)
			}
			for path, ferr := range res.Failed {
				a.Log.WithError(ferr).WithField("path", path).Warn("import failed")
			}
			printImport(cmd.OutOrStdout(), res)

			total, err := a.Catalog.TrackCount()
			if err != nil {
				return errmsg.Wrap(errmsg.OpLibraryQuery, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s tracks in catalog\n", humanize.Comma(int64(total)))
			return nil
		},
	}
}

func printImport(out io.Writer, res catalog.ImportResult) {
	fmt.Fprintf(out, "%s added, %s skipped, %s failed\n",
		humanize.Comma(int64(len(res.Added))),
		humanize.Comma(int64(len(res.Skipped))),
		humanize.Comma(int64(len(res.Failed))))

	failed := lo.Keys(res.Failed)
	sort.Strings(failed)
	for _, path := range failed {
		fmt.Fprintf(out, "  %s: %v\n", path, res.Failed[path])
	}
}

func newTracksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks [query]",
		Short: "List catalog tracks, optionally filtered by title or artist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			var tracks []catalog.FullTrack
			if len(args) == 1 {
				tracks, err = a.Catalog.SearchTracks(args[0])
			} else {
				tracks, err = a.Catalog.AllTracks()
			}
			if err != nil {
				return errmsg.Wrap(errmsg.OpLibraryQuery, err)
			}

			if lo.Must(cmd.Flags().GetBool("plain")) {
				for _, t := range tracks {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", t.ID, t.Title, t.ArtistName, t.AlbumTitle)
				}
				return nil
			}
			printTracks(cmd.OutOrStdout(), tracks)
			return nil
		},
	}
	cmd.Flags().Bool("plain", false, "print tab separated rows without a table")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <track>...",
		Short: "Remove tracks from the catalog and from every playlist",
		Long:  "Remove tracks from the catalog and from every playlist. The files are left on disk.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return errmsg.Wrap(errmsg.OpParseArgs, err)
			}

			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			for i, id := range ids {
				t, err := a.Catalog.TrackByID(id)
				if err != nil {
					return errmsg.WrapWith(errmsg.OpTrackLookup, args[i], err)
				}
				if err := a.Catalog.DeleteTrack(id); err != nil {
					return errmsg.WrapWith(errmsg.OpTrackDelete, args[i], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", t.Title)
			}
			return nil
		},
	}
}

func newArtistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List catalog artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			artists, err := a.Catalog.Artists()
			if err != nil {
				return errmsg.Wrap(errmsg.OpLibraryQuery, err)
			}
			out := cmd.OutOrStdout()
			if len(artists) == 0 {
				fmt.Fprintln(out, "no artists")
				return nil
			}
			rows := lo.Map(artists, func(ar catalog.Artist, _ int) []string {
				return []string{strconv.FormatInt(ar.ID, 10), ar.Name, ar.Genre}
			})
			fmt.Fprintln(out, newTable("ID", "NAME", "GENRE").Rows(rows...).Render())
			return nil
		},
	}
}

func newAlbumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "albums [artist]",
		Short: "List catalog albums, optionally of one artist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return errmsg.Wrap(errmsg.OpParseArgs, err)
			}
			var artistID int64
			if len(ids) == 1 {
				artistID = ids[0]
			}

			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			albums, err := a.Catalog.Albums(artistID)
			if err != nil {
				return errmsg.Wrap(errmsg.OpLibraryQuery, err)
			}
			out := cmd.OutOrStdout()
			if len(albums) == 0 {
				fmt.Fprintln(out, "no albums")
				return nil
			}
			rows := make([][]string, 0, len(albums))
			for _, al := range albums {
				tracks, err := a.Catalog.AlbumTracks(al.ID)
				if err != nil {
					return errmsg.WrapWith(errmsg.OpLibraryQuery, al.Title, err)
				}
				year := ""
				if al.Year > 0 {
					year = strconv.FormatInt(al.Year, 10)
				}
				rows = append(rows, []string{
					strconv.FormatInt(al.ID, 10),
					al.Title,
					year,
					humanize.Comma(int64(len(tracks))),
				})
			}
			fmt.Fprintln(out, newTable("ID", "TITLE", "YEAR", "TRACKS").Rows(rows...).Render())
			return nil
		},
	}
}

func printTracks(out io.Writer, tracks []catalog.FullTrack) {
	if len(tracks) == 0 {
		fmt.Fprintln(out, "no tracks")
		return
	}
	rows := lo.Map(tracks, func(t catalog.FullTrack, _ int) []string {
		return []string{strconv.FormatInt(t.ID, 10), t.Title, t.ArtistName, t.AlbumTitle, t.FormattedDuration()}
	})
	fmt.Fprintln(out, newTable("ID", "TITLE", "ARTIST", "ALBUM", "TIME").Rows(rows...).Render())
	fmt.Fprintf(out, "%s tracks\n", humanize.Comma(int64(len(tracks))))
}

func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
