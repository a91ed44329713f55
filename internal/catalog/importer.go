package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dhowden/tag"
)

// Extensions the importer accepts.
var musicExtensions = []string{".mp3", ".flac", ".wav", ".ogg"}

// Common cover art base names, case-insensitive.
var coverArtNames = []string{"cover", "folder", "front", "album", "albumart", "artwork"}

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// DurationFunc reports the playing time of an audio file.
type DurationFunc func(path string) (time.Duration, error)

// ImportResult summarizes an Import run.
type ImportResult struct {
	Added   []int64
	Skipped []string
	Failed  map[string]error
}

// IsMusicFile reports whether path has an extension the importer accepts.
func IsMusicFile(path string) bool {
	return slices.Contains(musicExtensions, strings.ToLower(filepath.Ext(path)))
}

// FindCoverArt looks for a cover image in dir and returns its path, or "".
func FindCoverArt(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		base := strings.ToLower(strings.TrimSuffix(name, ext))
		if slices.Contains(imageExtensions, ext) && slices.Contains(coverArtNames, base) {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

// SetDurationFunc sets the function used to fill in track durations on
// import. Without one, durations are stored as 0.
func (c *Catalog) SetDurationFunc(fn DurationFunc) {
	c.durationOf = fn
}

// Import adds every music file found under paths. Directories are walked
// recursively. Files already in the catalog and non-music files are
// skipped; per-file failures are collected in the result.
func (c *Catalog) Import(paths ...string) (ImportResult, error) {
	result := ImportResult{Failed: make(map[string]error)}

	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return result, fmt.Errorf("import %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				result.Failed[path] = walkErr
				return nil
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
	}

	covers := make(map[string]string)
	for _, path := range files {
		if !IsMusicFile(path) {
			result.Skipped = append(result.Skipped, path)
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			result.Failed[path] = err
			continue
		}
		known, err := c.HasPath(abs)
		if err != nil {
			return result, err
		}
		if known {
			result.Skipped = append(result.Skipped, abs)
			continue
		}

		dir := filepath.Dir(abs)
		art, ok := covers[dir]
		if !ok {
			art = FindCoverArt(dir)
			covers[dir] = art
		}

		in := readTrackInput(abs)
		in.AlbumArt = art
		if c.durationOf != nil {
			if d, err := c.durationOf(abs); err == nil {
				in.Duration = d.Milliseconds()
			}
		}

		id, err := c.AddTrack(in)
		if err != nil {
			result.Failed[abs] = err
			continue
		}
		result.Added = append(result.Added, id)
	}
	return result, nil
}

// readTrackInput reads tags from path. Files without readable tags get
// their file name as title.
func readTrackInput(path string) TrackInput {
	in := TrackInput{
		FilePath: path,
		Title:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	f, err := os.Open(path)
	if err != nil {
		return in
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return in
	}

	if m.Title() != "" {
		in.Title = m.Title()
	}
	in.Artist = m.Artist()
	in.AlbumArtist = m.AlbumArtist()
	in.Album = m.Album()
	in.Genre = m.Genre()
	in.Year = int64(m.Year())
	in.Composer = m.Composer()
	in.Lyrics = m.Lyrics()

	track, _ := m.Track()
	disc, _ := m.Disc()
	in.TrackNumber = int64(track)
	in.DiscNumber = int64(disc)
	return in
}
