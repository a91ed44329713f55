// Package shell is an interactive command line over the playback service.
package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/aurex/internal/catalog"
	"github.com/llehouerou/aurex/internal/errmsg"
	"github.com/llehouerou/aurex/internal/playback"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// Library is the part of the catalog the shell reads.
type Library interface {
	AllTracks() ([]catalog.FullTrack, error)
	SearchTracks(query string) ([]catalog.FullTrack, error)
	FullTrackByID(id int64) (*catalog.FullTrack, error)
	PlaylistTracks(playlistID int64) ([]catalog.FullTrack, error)
	AlbumTracks(albumID int64) ([]catalog.FullTrack, error)
	Albums(artistID int64) ([]catalog.Album, error)
	Artists() ([]catalog.Artist, error)
}

type command struct {
	usage string
	help  string
	run   func(args []string) error
}

// Shell parses command lines and runs them against the playback service.
type Shell struct {
	svc      playback.Service
	lib      Library
	out      io.Writer
	commands map[string]command
}

// New creates a shell writing its output to out.
func New(svc playback.Service, lib Library, out io.Writer) *Shell {
	s := &Shell{svc: svc, lib: lib, out: out}
	s.commands = map[string]command{
		"status":    {"status [--json]", "show the player", s.status},
		"tracks":    {"tracks [query]", "list or search library tracks", s.tracks},
		"load":      {"load <id>", "load a track, paused", s.load},
		"play":      {"play", "resume playback", s.simple(s.svc.Play)},
		"pause":     {"pause", "pause playback", s.simple(s.svc.Pause)},
		"clear":     {"clear", "stop and empty the queue", s.simple(s.svc.Clear)},
		"next":      {"next", "skip to the next queued track", s.simple(s.svc.Next)},
		"playall":   {"playall [index]", "play the whole library from index", s.playAll},
		"playlist":  {"playlist <id> [index]", "play a playlist from index", s.playPlaylist},
		"album":     {"album <id> [index]", "play an album from index", s.playAlbum},
		"albums":    {"albums [artist-id]", "list albums", s.albums},
		"artists":   {"artists", "list artists", s.artists},
		"playids":   {"playids <index> <id>...", "play track ids from index", s.playIDs},
		"playnext":  {"playnext <id>", "queue a track to play next", s.playNext},
		"queue":     {"queue <id>...", "append tracks to the queue", s.queue},
		"queuenext": {"queuenext <id>...", "insert tracks at the queue front", s.queueNext},
		"move":      {"move <old> <new>", "move a queue item", s.move},
		"seek":      {"seek <seconds>", "jump within the current track", s.seek},
		"help":      {"help", "list commands", s.help},
		"quit":      {"quit", "leave the shell", func([]string) error { return ErrQuit }},
	}
	return s
}

// Exec runs one command line. Empty lines do nothing.
func (s *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := s.commands[fields[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return cmd.run(fields[1:])
}

// Run reads commands until quit or end of input. History is kept in
// historyFile when it is not empty.
func (s *Shell) Run(historyFile string) error {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.commands))
	for _, name := range s.names() {
		items = append(items, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "aurex> ",
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.Exec(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, errmsg.Message(err))
		}
	}
}

func (s *Shell) names() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Shell) simple(fn func() playback.Snapshot) func([]string) error {
	return func(args []string) error {
		if len(args) != 0 {
			return errUsage("takes no arguments")
		}
		s.printSnapshot(fn())
		return nil
	}
}

func (s *Shell) status(args []string) error {
	snap := s.svc.Player()
	if len(args) == 1 && args[0] == "--json" {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, string(data))
		return nil
	}
	if len(args) != 0 {
		return errUsage("status [--json]")
	}
	s.printSnapshot(snap)
	return nil
}

func (s *Shell) tracks(args []string) error {
	var (
		list []catalog.FullTrack
		err  error
	)
	if len(args) == 0 {
		list, err = s.lib.AllTracks()
	} else {
		list, err = s.lib.SearchTracks(strings.Join(args, " "))
	}
	if err != nil {
		return errmsg.Wrap(errmsg.OpLibraryQuery, err)
	}
	for _, t := range list {
		fmt.Fprintf(s.out, "%6d  %s  %s\n", t.ID, t.FormattedDuration(), trackLabel(t))
	}
	fmt.Fprintf(s.out, "%s tracks\n", humanize.Comma(int64(len(list))))
	return nil
}

func (s *Shell) load(args []string) error {
	if len(args) != 1 {
		return errUsage("load <id>")
	}
	t, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	s.printSnapshot(s.svc.Load(*t))
	return nil
}

func (s *Shell) playAll(args []string) error {
	index, err := optionalIndex(args, 0, "playall [index]")
	if err != nil {
		return err
	}
	list, err := s.lib.AllTracks()
	if err != nil {
		return errmsg.Wrap(errmsg.OpLibraryQuery, err)
	}
	s.printSnapshot(s.svc.PlayList(list, index))
	return nil
}

func (s *Shell) playPlaylist(args []string) error {
	if len(args) < 1 {
		return errUsage("playlist <id> [index]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	index, err := optionalIndex(args, 1, "playlist <id> [index]")
	if err != nil {
		return err
	}
	list, err := s.lib.PlaylistTracks(id)
	if err != nil {
		return errmsg.Wrap(errmsg.OpPlaylistLoad, err)
	}
	s.printSnapshot(s.svc.PlayList(list, index))
	return nil
}

func (s *Shell) playAlbum(args []string) error {
	if len(args) < 1 {
		return errUsage("album <id> [index]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	index, err := optionalIndex(args, 1, "album <id> [index]")
	if err != nil {
		return err
	}
	list, err := s.lib.AlbumTracks(id)
	if err != nil {
		return errmsg.WrapWith(errmsg.OpLibraryQuery, args[0], err)
	}
	if len(list) == 0 {
		return errmsg.WrapWith(errmsg.OpLibraryQuery, args[0], catalog.ErrNotFound)
	}
	s.printSnapshot(s.svc.PlayList(list, index))
	return nil
}

func (s *Shell) albums(args []string) error {
	var artistID int64
	switch len(args) {
	case 0:
	case 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		artistID = id
	default:
		return errUsage("albums [artist-id]")
	}
	list, err := s.lib.Albums(artistID)
	if err != nil {
		return errmsg.Wrap(errmsg.OpLibraryQuery, err)
	}
	for _, a := range list {
		if a.Year > 0 {
			fmt.Fprintf(s.out, "%6d  %s (%d)\n", a.ID, a.Title, a.Year)
		} else {
			fmt.Fprintf(s.out, "%6d  %s\n", a.ID, a.Title)
		}
	}
	fmt.Fprintf(s.out, "%s albums\n", humanize.Comma(int64(len(list))))
	return nil
}

func (s *Shell) artists(args []string) error {
	if len(args) != 0 {
		return errUsage("artists")
	}
	list, err := s.lib.Artists()
	if err != nil {
		return errmsg.Wrap(errmsg.OpLibraryQuery, err)
	}
	for _, a := range list {
		fmt.Fprintf(s.out, "%6d  %s\n", a.ID, a.Name)
	}
	fmt.Fprintf(s.out, "%s artists\n", humanize.Comma(int64(len(list))))
	return nil
}

func (s *Shell) playIDs(args []string) error {
	if len(args) < 2 {
		return errUsage("playids <index> <id>...")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage("playids <index> <id>...")
	}
	tracks, err := bareTracks(args[1:])
	if err != nil {
		return err
	}
	s.printSnapshot(s.svc.PlayTracks(tracks, index))
	return nil
}

func (s *Shell) playNext(args []string) error {
	if len(args) != 1 {
		return errUsage("playnext <id>")
	}
	t, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	s.printSnapshot(s.svc.PlayNext(*t))
	return nil
}

func (s *Shell) queue(args []string) error {
	if len(args) == 0 {
		return errUsage("queue <id>...")
	}
	tracks, err := bareTracks(args)
	if err != nil {
		return err
	}
	s.printSnapshot(s.svc.AddListToQueue(nil, tracks))
	return nil
}

func (s *Shell) queueNext(args []string) error {
	if len(args) == 0 {
		return errUsage("queuenext <id>...")
	}
	tracks, err := bareTracks(args)
	if err != nil {
		return err
	}
	s.printSnapshot(s.svc.PlayListNext(nil, tracks))
	return nil
}

func (s *Shell) move(args []string) error {
	if len(args) != 2 {
		return errUsage("move <old> <new>")
	}
	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return errUsage("move <old> <new>")
	}
	s.printSnapshot(s.svc.ChangeQueueIndex(from, to))
	return nil
}

func (s *Shell) seek(args []string) error {
	if len(args) != 1 {
		return errUsage("seek <seconds>")
	}
	seconds, err := strconv.ParseFloat(args[0], 64)
	if err != nil || seconds < 0 {
		return errUsage("seek <seconds>")
	}
	s.svc.Seek(seconds)
	return nil
}

func (s *Shell) help([]string) error {
	for _, name := range s.names() {
		cmd := s.commands[name]
		fmt.Fprintf(s.out, "  %-24s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (s *Shell) lookup(arg string) (*catalog.FullTrack, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	t, err := s.lib.FullTrackByID(id)
	if err != nil {
		return nil, errmsg.WrapWith(errmsg.OpTrackLookup, arg, err)
	}
	return t, nil
}

func (s *Shell) printSnapshot(snap playback.Snapshot) {
	if snap.CurrentlyPlaying == nil {
		fmt.Fprintf(s.out, "[%s]\n", snap.State)
	} else {
		fmt.Fprintf(s.out, "[%s] %s\n", snap.State, trackLabel(*snap.CurrentlyPlaying))
	}
	for i, t := range snap.Queue {
		fmt.Fprintf(s.out, "  %2d. %s\n", i, trackLabel(t))
	}
}

func trackLabel(t catalog.FullTrack) string {
	return fmt.Sprintf("%s - %s (%s)", t.Title, t.ArtistName, t.AlbumTitle)
}

func errUsage(usage string) error {
	return errmsg.WrapWith(errmsg.OpParseArgs, usage, errors.New("invalid arguments"))
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errmsg.WrapWith(errmsg.OpParseArgs, arg, errors.New("not a track id"))
	}
	return id, nil
}

func optionalIndex(args []string, pos int, usage string) (int, error) {
	if len(args) <= pos {
		return 0, nil
	}
	if len(args) > pos+1 {
		return 0, errUsage(usage)
	}
	index, err := strconv.Atoi(args[pos])
	if err != nil {
		return 0, errUsage(usage)
	}
	return index, nil
}

func bareTracks(args []string) ([]catalog.Track, error) {
	tracks := make([]catalog.Track, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, catalog.Track{ID: id})
	}
	return tracks, nil
}
