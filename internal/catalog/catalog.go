package catalog

import (
	"database/sql"
	"errors"

	"github.com/llehouerou/aurex/internal/db"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Catalog is the SQLite-backed library. It is safe for concurrent use.
type Catalog struct {
	db         *sql.DB
	durationOf DurationFunc
}

// Open opens the catalog database at path, creating it if needed.
func Open(path string) (*Catalog, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return New(conn)
}

// OpenMemory opens an empty in-memory catalog.
func OpenMemory() (*Catalog, error) {
	conn, err := db.OpenMemory()
	if err != nil {
		return nil, err
	}
	return New(conn)
}

// New wraps an open database and applies the schema.
func New(conn *sql.DB) (*Catalog, error) {
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &Catalog{db: conn}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS artists (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			name    TEXT    NOT NULL UNIQUE,
			genre   TEXT
		);

		CREATE TABLE IF NOT EXISTS albums (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			artist_id   INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			title       TEXT    NOT NULL,
			year        INTEGER,
			genre       TEXT,
			album_art   TEXT,
			UNIQUE (artist_id, title)
		);

		CREATE TABLE IF NOT EXISTS tracks (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			album_id        INTEGER NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
			artist_id       INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			file_path       TEXT    NOT NULL UNIQUE,
			title           TEXT,
			track_number    INTEGER,
			disc_number     INTEGER,
			bpm             INTEGER,
			duration        INTEGER,
			initial_key     TEXT,
			isrc            TEXT,
			lyrics          TEXT,
			composer        TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_album ON tracks(album_id, disc_number, track_number);

		CREATE TABLE IF NOT EXISTS playlists (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT    NOT NULL,
			cover_path  TEXT,
			created_at  INTEGER
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			track_id    INTEGER NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks ON playlist_tracks(playlist_id, position);
	`)
	return err
}
