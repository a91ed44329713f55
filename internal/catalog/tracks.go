package catalog

import (
	"database/sql"
	"errors"

	"github.com/llehouerou/aurex/internal/db"
)

const trackColumns = `t.id, t.album_id, t.artist_id, t.file_path, t.title, t.track_number,
	t.disc_number, t.bpm, t.duration, t.initial_key, t.isrc, t.lyrics, t.composer`

const fullTrackSelect = `
	SELECT ` + trackColumns + `, r.name, a.title, a.album_art
	FROM tracks t
	JOIN artists r ON t.artist_id = r.id
	JOIN albums  a ON t.album_id  = a.id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrack(row scanner, extra ...any) (Track, error) {
	var t Track
	var title, key, isrc, lyrics, composer sql.NullString
	var trackNum, discNum, bpm, duration sql.NullInt64

	dest := []any{&t.ID, &t.AlbumID, &t.ArtistID, &t.FilePath, &title, &trackNum,
		&discNum, &bpm, &duration, &key, &isrc, &lyrics, &composer}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return Track{}, err
	}

	t.Title = db.NullStringOr(title, UnknownTitle)
	t.TrackNumber = db.NullInt64Or(trackNum, 0)
	t.DiscNumber = db.NullInt64Or(discNum, 1)
	t.BPM = db.NullInt64Or(bpm, 0)
	t.Duration = db.NullInt64Or(duration, 0)
	t.InitialKey = db.NullStringOr(key, "")
	t.ISRC = db.NullStringOr(isrc, "")
	t.Lyrics = db.NullStringOr(lyrics, "")
	t.Composer = db.NullStringOr(composer, "")
	return t, nil
}

func scanFullTrack(row scanner, extra ...any) (FullTrack, error) {
	var artist, album, art sql.NullString
	t, err := scanTrack(row, append([]any{&artist, &album, &art}, extra...)...)
	if err != nil {
		return FullTrack{}, err
	}
	return FullTrack{
		Track:      t,
		ArtistName: db.NullStringOr(artist, UnknownArtist),
		AlbumTitle: db.NullStringOr(album, UnknownAlbum),
		AlbumArt:   db.NullStringOr(art, ""),
	}, nil
}

func collectFullTracks(rows *sql.Rows) ([]FullTrack, error) {
	defer rows.Close()

	var tracks []FullTrack
	for rows.Next() {
		ft, err := scanFullTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, ft)
	}
	return tracks, rows.Err()
}

// AllTracks returns every track in insertion order.
func (c *Catalog) AllTracks() ([]FullTrack, error) {
	rows, err := c.db.Query(fullTrackSelect + ` ORDER BY t.id ASC`)
	if err != nil {
		return nil, err
	}
	return collectFullTracks(rows)
}

// TrackByID returns a bare track row.
func (c *Catalog) TrackByID(id int64) (*Track, error) {
	row := c.db.QueryRow(`SELECT `+trackColumns+` FROM tracks t WHERE t.id = ?`, id)
	t, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FullTrackByID resolves a track id to a FullTrack. Unknown ids return
// ErrNotFound.
func (c *Catalog) FullTrackByID(id int64) (*FullTrack, error) {
	row := c.db.QueryRow(fullTrackSelect+` WHERE t.id = ?`, id)
	ft, err := scanFullTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ft, nil
}

// AlbumTracks returns the tracks of an album in disc/track order.
func (c *Catalog) AlbumTracks(albumID int64) ([]FullTrack, error) {
	rows, err := c.db.Query(fullTrackSelect+`
		WHERE t.album_id = ?
		ORDER BY t.disc_number, t.track_number, t.title COLLATE NOCASE
	`, albumID)
	if err != nil {
		return nil, err
	}
	return collectFullTracks(rows)
}

// SearchTracks matches query against track titles and artist names,
// case-insensitively.
func (c *Catalog) SearchTracks(query string) ([]FullTrack, error) {
	pattern := "%" + query + "%"
	rows, err := c.db.Query(fullTrackSelect+`
		WHERE t.title LIKE ? OR r.name LIKE ?
		ORDER BY t.title COLLATE NOCASE
	`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return collectFullTracks(rows)
}

// HasPath reports whether a track with this file path exists.
func (c *Catalog) HasPath(path string) (bool, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM tracks WHERE file_path = ?`, path).Scan(&n)
	return n > 0, err
}

// DeleteTrack removes a track and its playlist entries.
func (c *Catalog) DeleteTrack(id int64) error {
	_, err := c.db.Exec(`DELETE FROM tracks WHERE id = ?`, id)
	return err
}

// TrackCount returns the number of tracks.
func (c *Catalog) TrackCount() (int, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&n)
	return n, err
}

// Artists returns all artists by name.
func (c *Catalog) Artists() ([]Artist, error) {
	rows, err := c.db.Query(`SELECT id, name, genre FROM artists ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		var genre sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &genre); err != nil {
			return nil, err
		}
		a.Genre = db.NullStringOr(genre, "")
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// Albums returns all albums, optionally restricted to one artist
// (artistID 0 means all).
func (c *Catalog) Albums(artistID int64) ([]Album, error) {
	rows, err := c.db.Query(`
		SELECT id, artist_id, title, year, genre, album_art
		FROM albums
		WHERE ? = 0 OR artist_id = ?
		ORDER BY (year IS NULL OR year = 0), year, title COLLATE NOCASE
	`, artistID, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var a Album
		var year sql.NullInt64
		var genre, art sql.NullString
		if err := rows.Scan(&a.ID, &a.ArtistID, &a.Title, &year, &genre, &art); err != nil {
			return nil, err
		}
		a.Year = db.NullInt64Or(year, 0)
		a.Genre = db.NullStringOr(genre, "")
		a.AlbumArt = db.NullStringOr(art, "")
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// TrackInput is the metadata needed to add a track.
type TrackInput struct {
	FilePath    string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	AlbumArt    string
	Genre       string
	Year        int64
	TrackNumber int64
	DiscNumber  int64
	BPM         int64
	Duration    int64
	InitialKey  string
	ISRC        string
	Lyrics      string
	Composer    string
}

// AddTrack inserts a track, creating its artist and album as needed.
// The album is keyed by album artist (falling back to artist) and title;
// an existing album keeps its art unless it had none.
func (c *Catalog) AddTrack(in TrackInput) (int64, error) {
	artist := firstNonEmpty(in.Artist, in.AlbumArtist, UnknownArtist)
	albumArtist := firstNonEmpty(in.AlbumArtist, in.Artist, UnknownArtist)
	album := firstNonEmpty(in.Album, UnknownAlbum)

	var trackID int64
	err := db.WithTx(c.db, func(tx *sql.Tx) error {
		artistID, err := upsertArtist(tx, artist, in.Genre)
		if err != nil {
			return err
		}
		albumArtistID := artistID
		if albumArtist != artist {
			if albumArtistID, err = upsertArtist(tx, albumArtist, in.Genre); err != nil {
				return err
			}
		}
		albumID, err := upsertAlbum(tx, albumArtistID, album, in.Year, in.Genre, in.AlbumArt)
		if err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO tracks (album_id, artist_id, file_path, title, track_number, disc_number,
				bpm, duration, initial_key, isrc, lyrics, composer)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, albumID, artistID, in.FilePath, db.NullableString(in.Title), in.TrackNumber,
			max(in.DiscNumber, 1), in.BPM, in.Duration, db.NullableString(in.InitialKey),
			db.NullableString(in.ISRC), db.NullableString(in.Lyrics), db.NullableString(in.Composer))
		if err != nil {
			return err
		}
		trackID, err = res.LastInsertId()
		return err
	})
	return trackID, err
}

func upsertArtist(tx *sql.Tx, name, genre string) (int64, error) {
	_, err := tx.Exec(`
		INSERT INTO artists (name, genre) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, db.NullableString(genre))
	if err != nil {
		return 0, err
	}
	var id int64
	err = tx.QueryRow(`SELECT id FROM artists WHERE name = ?`, name).Scan(&id)
	return id, err
}

func upsertAlbum(tx *sql.Tx, artistID int64, title string, year int64, genre, art string) (int64, error) {
	_, err := tx.Exec(`
		INSERT INTO albums (artist_id, title, year, genre, album_art)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(artist_id, title) DO UPDATE SET
			album_art = COALESCE(albums.album_art, excluded.album_art)
	`, artistID, title, year, db.NullableString(genre), db.NullableString(art))
	if err != nil {
		return 0, err
	}
	var id int64
	err = tx.QueryRow(`SELECT id FROM albums WHERE artist_id = ? AND title = ?`, artistID, title).Scan(&id)
	return id, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
