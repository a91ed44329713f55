package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/aurex/internal/app"
	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/errmsg"
)

func newPlaylistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playlists",
		Aliases: []string{"pl"},
		Short:   "List playlists",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			playlists, err := a.Catalog.Playlists()
			if err != nil {
				return errmsg.Wrap(errmsg.OpPlaylistList, err)
			}
			out := cmd.OutOrStdout()
			if len(playlists) == 0 {
				fmt.Fprintln(out, "no playlists")
				return nil
			}

			rows := make([][]string, 0, len(playlists))
			for _, p := range playlists {
				tracks, err := a.Catalog.PlaylistTracks(p.ID)
				if err != nil {
					return errmsg.WrapWith(errmsg.OpPlaylistLoad, p.Name, err)
				}
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.Name,
					humanize.Comma(int64(len(tracks))),
					humanize.Time(time.UnixMilli(p.CreatedAt)),
				})
			}
			fmt.Fprintln(out, newTable("ID", "NAME", "TRACKS", "CREATED").Rows(rows...).Render())
			return nil
		},
	}
	cmd.AddCommand(
		newPlaylistCreateCmd(),
		newPlaylistAddCmd(),
		newPlaylistShowCmd(),
		newPlaylistRenameCmd(),
		newPlaylistDeleteCmd(),
		newPlaylistRemoveCmd(),
		newPlaylistMoveCmd(),
	)
	return cmd
}

func newPlaylistCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Catalog.CreatePlaylist(args[0], lo.Must(cmd.Flags().GetString("cover")))
			if err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistCreate, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created playlist %d\n", id)
			return nil
		},
	}
	cmd.Flags().String("cover", "", "cover image path")
	return cmd
}

func newPlaylistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <playlist> <track>...",
		Short: "Append tracks to a playlist",
		Args:  cobra.MinimumNArgs(2),
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

			if _, err := a.Catalog.PlaylistByID(ids[0]); err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistLoad, args[0], err)
			}
			for _, id := range ids[1:] {
				if _, err := a.Catalog.TrackByID(id); err != nil {
					return errmsg.WrapWith(errmsg.OpTrackLookup, strconv.FormatInt(id, 10), err)
				}
			}
			if err := a.Catalog.AddToPlaylist(ids[0], ids[1:]...); err != nil {
				return errmsg.Wrap(errmsg.OpPlaylistAddTrack, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d tracks\n", len(ids)-1)
			return nil
		},
	}
}

func newPlaylistShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <playlist>",
		Short: "List the tracks of a playlist",
		Args:  cobra.ExactArgs(1),
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

			tracks, err := a.Catalog.PlaylistTracks(ids[0])
			if err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistLoad, args[0], err)
			}
			printPlaylistTracks(cmd.OutOrStdout(), tracks)
			return nil
		},
	}
}

func newPlaylistRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <playlist> <name>",
		Short: "Rename a playlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:1])
			if err != nil {
				return errmsg.Wrap(errmsg.OpParseArgs, err)
			}

			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Catalog.PlaylistByID(ids[0]); err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistLoad, args[0], err)
			}
			if err := a.Catalog.RenamePlaylist(ids[0], args[1]); err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistRename, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed playlist %d to %s\n", ids[0], args[1])
			return nil
		},
	}
}

func newPlaylistDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <playlist>",
		Aliases: []string{"rm"},
		Short:   "Delete a playlist and its entries",
		Args:    cobra.ExactArgs(1),
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

			p, err := a.Catalog.PlaylistByID(ids[0])
			if err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistLoad, args[0], err)
			}
			if err := a.Catalog.DeletePlaylist(p.ID); err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistDelete, p.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted playlist %s\n", p.Name)
			return nil
		},
	}
}

func newPlaylistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <playlist> <position>",
		Short: "Remove the entry at position (as listed by show)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return errmsg.Wrap(errmsg.OpParseArgs, err)
			}
			playlistID, pos := ids[0], ids[1]

			a, err := openApp(cmd, app.Options{NoPlayback: true})
			if err != nil {
				return err
			}
			defer a.Close()

			tracks, err := a.Catalog.PlaylistTracks(playlistID)
			if err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistLoad, args[0], err)
			}
			entry, ok := lo.Find(tracks, func(t catalog.FullTrack) bool {
				return t.PlaylistPosition != nil && *t.PlaylistPosition == pos
			})
			if !ok {
				return errmsg.WrapWith(errmsg.OpPlaylistRemove, args[1], catalog.ErrNotFound)
			}
			if err := a.Catalog.RemoveFromPlaylist(playlistID, entry.ID, pos); err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistRemove, args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", entry.Title)
			return nil
		},
	}
}

func newPlaylistMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <playlist> <from> <to>",
		Short: "Move a playlist entry to another position",
		Args:  cobra.ExactArgs(3),
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

			if _, err := a.Catalog.PlaylistByID(ids[0]); err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistLoad, args[0], err)
			}
			if err := a.Catalog.ReorderPlaylist(ids[0], ids[1], ids[2]); err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistReorder, args[0], err)
			}
			tracks, err := a.Catalog.PlaylistTracks(ids[0])
			if err != nil {
				return errmsg.WrapWith(errmsg.OpPlaylistLoad, args[0], err)
			}
			printPlaylistTracks(cmd.OutOrStdout(), tracks)
			return nil
		},
	}
}

func printPlaylistTracks(out io.Writer, tracks []catalog.FullTrack) {
	if len(tracks) == 0 {
		fmt.Fprintln(out, "no tracks")
		return
	}
	rows := lo.Map(tracks, func(t catalog.FullTrack, _ int) []string {
		return []string{
			strconv.FormatInt(lo.FromPtr(t.PlaylistPosition), 10),
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.ArtistName,
			t.FormattedDuration(),
		}
	})
	fmt.Fprintln(out, newTable("POS", "ID", "TITLE", "ARTIST", "TIME").Rows(rows...).Render())
	fmt.Fprintf(out, "%s tracks\n", humanize.Comma(int64(len(tracks))))
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}
