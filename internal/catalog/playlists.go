package catalog

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/aurex/internal/db"
)

// CreatePlaylist creates an empty playlist and returns its id.
func (c *Catalog) CreatePlaylist(name, coverPath string) (int64, error) {
	res, err := c.db.Exec(`
		INSERT INTO playlists (name, cover_path, created_at) VALUES (?, ?, ?)
	`, name, db.NullableString(coverPath), time.Now().UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Playlists returns all playlists, oldest first.
func (c *Catalog) Playlists() ([]Playlist, error) {
	rows, err := c.db.Query(`SELECT id, name, cover_path, created_at FROM playlists ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		var cover sql.NullString
		var created sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &cover, &created); err != nil {
			return nil, err
		}
		p.CoverPath = db.NullStringOr(cover, "")
		p.CreatedAt = db.NullInt64Or(created, 0)
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// PlaylistByID returns one playlist, or ErrNotFound.
func (c *Catalog) PlaylistByID(id int64) (*Playlist, error) {
	var p Playlist
	var cover sql.NullString
	var created sql.NullInt64
	err := c.db.QueryRow(`SELECT id, name, cover_path, created_at FROM playlists WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &cover, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CoverPath = db.NullStringOr(cover, "")
	p.CreatedAt = db.NullInt64Or(created, 0)
	return &p, nil
}

// RenamePlaylist sets the name of a playlist.
func (c *Catalog) RenamePlaylist(id int64, name string) error {
	_, err := c.db.Exec(`UPDATE playlists SET name = ? WHERE id = ?`, name, id)
	return err
}

// DeletePlaylist deletes a playlist and its entries.
func (c *Catalog) DeletePlaylist(id int64) error {
	_, err := c.db.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	return err
}

// AddToPlaylist appends tracks to the end of a playlist.
func (c *Catalog) AddToPlaylist(playlistID int64, trackIDs ...int64) error {
	return db.WithTx(c.db, func(tx *sql.Tx) error {
		var next int64
		err := tx.QueryRow(`
			SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_tracks WHERE playlist_id = ?
		`, playlistID).Scan(&next)
		if err != nil {
			return err
		}

		for _, id := range trackIDs {
			if _, err := tx.Exec(`
				INSERT INTO playlist_tracks (playlist_id, track_id, position) VALUES (?, ?, ?)
			`, playlistID, id, next); err != nil {
				return err
			}
			next++
		}
		return nil
	})
}

// RemoveFromPlaylist removes the entry of trackID at position and closes
// the gap it leaves.
func (c *Catalog) RemoveFromPlaylist(playlistID, trackID, position int64) error {
	return db.WithTx(c.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ? AND position = ?
		`, playlistID, trackID, position)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		_, err = tx.Exec(`
			UPDATE playlist_tracks SET position = position - 1
			WHERE playlist_id = ? AND position > ?
		`, playlistID, position)
		return err
	})
}

// ReorderPlaylist moves the entry at oldPos to newPos, shifting the
// entries in between.
func (c *Catalog) ReorderPlaylist(playlistID, oldPos, newPos int64) error {
	if oldPos == newPos {
		return nil
	}
	return db.WithTx(c.db, func(tx *sql.Tx) error {
		var count int64
		if err := tx.QueryRow(`
			SELECT COUNT(*) FROM playlist_tracks WHERE playlist_id = ?
		`, playlistID).Scan(&count); err != nil {
			return err
		}
		if oldPos < 0 || oldPos >= count {
			return ErrNotFound
		}
		newPos = min(max(newPos, 0), count-1)
		if oldPos == newPos {
			return nil
		}

		// Park the moved row outside the range while the others shift.
		if _, err := tx.Exec(`
			UPDATE playlist_tracks SET position = -1 WHERE playlist_id = ? AND position = ?
		`, playlistID, oldPos); err != nil {
			return err
		}

		var err error
		if oldPos < newPos {
			_, err = tx.Exec(`
				UPDATE playlist_tracks SET position = position - 1
				WHERE playlist_id = ? AND position > ? AND position <= ?
			`, playlistID, oldPos, newPos)
		} else {
			_, err = tx.Exec(`
				UPDATE playlist_tracks SET position = position + 1
				WHERE playlist_id = ? AND position >= ? AND position < ?
			`, playlistID, newPos, oldPos)
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			UPDATE playlist_tracks SET position = ? WHERE playlist_id = ? AND position = -1
		`, newPos, playlistID)
		return err
	})
}

// PlaylistTracks returns the playlist's tracks in order, each with its
// PlaylistPosition set.
func (c *Catalog) PlaylistTracks(playlistID int64) ([]FullTrack, error) {
	rows, err := c.db.Query(`
		SELECT `+trackColumns+`, r.name, a.title, a.album_art, pt.position
		FROM playlist_tracks pt
		JOIN tracks  t ON pt.track_id = t.id
		JOIN artists r ON t.artist_id = r.id
		JOIN albums  a ON t.album_id  = a.id
		WHERE pt.playlist_id = ?
		ORDER BY pt.position
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []FullTrack
	for rows.Next() {
		var pos int64
		ft, err := scanFullTrack(rows, &pos)
		if err != nil {
			return nil, err
		}
		ft.PlaylistPosition = &pos
		tracks = append(tracks, ft)
	}
	return tracks, rows.Err()
}
