// Package catalog is the music library: artists, albums, tracks and
// playlists stored in SQLite.
package catalog

import "fmt"

// Defaults used for rows with missing tags.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAlbum  = "Unknown Album"
	UnknownArtist = "Unknown Artist"
)

type Artist struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Genre string `json:"genre,omitempty"`
}

type Album struct {
	ID       int64  `json:"id"`
	ArtistID int64  `json:"artist_id"`
	Title    string `json:"title"`
	Year     int64  `json:"year"`
	Genre    string `json:"genre,omitempty"`
	AlbumArt string `json:"album_art,omitempty"`
}

// Track is a catalog row. Duration is in milliseconds.
type Track struct {
	ID          int64  `json:"id"`
	AlbumID     int64  `json:"album_id"`
	ArtistID    int64  `json:"artist_id"`
	FilePath    string `json:"file_path"`
	Title       string `json:"title"`
	TrackNumber int64  `json:"track_number"`
	DiscNumber  int64  `json:"disc_number"`
	BPM         int64  `json:"bpm"`
	Duration    int64  `json:"duration"`
	InitialKey  string `json:"initial_key,omitempty"`
	ISRC        string `json:"isrc,omitempty"`
	Lyrics      string `json:"lyrics,omitempty"`
	Composer    string `json:"composer,omitempty"`
}

// FormattedDuration renders the duration as m:ss, or h:mm:ss past an hour.
func (t Track) FormattedDuration() string {
	if t.Duration <= 0 {
		return "0:00"
	}
	total := t.Duration / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FullTrack is a Track joined with its artist and album.
// PlaylistPosition is set only for tracks read from a playlist.
type FullTrack struct {
	Track            `json:"track"`
	ArtistName       string `json:"artist_name"`
	AlbumTitle       string `json:"album_title"`
	AlbumArt         string `json:"album_art,omitempty"`
	PlaylistPosition *int64 `json:"playlist_position,omitempty"`
}

// Clone returns a copy that shares no memory with f.
func (f FullTrack) Clone() FullTrack {
	c := f
	if f.PlaylistPosition != nil {
		pos := *f.PlaylistPosition
		c.PlaylistPosition = &pos
	}
	return c
}

// Playlist is a named, ordered list of tracks. CreatedAt is Unix ms.
type Playlist struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CoverPath string `json:"cover_path,omitempty"`
	CreatedAt int64  `json:"created_at"`
}
