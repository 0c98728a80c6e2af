package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/LouDnl/USBSID-player/internal/db"
)

// Session is the last playback session, restored at startup.
type Session struct {
	FilePath        string
	Engine          string
	Subtune         int
	Loop            bool
	DefaultTuneOnly bool
	PlaylistIndex   int
}

func getSession(db *sql.DB) (*Session, error) {
	var s Session
	row := db.QueryRow(`
		SELECT file_path, engine, subtune, loop, default_tune_only, playlist_index
		FROM session_state WHERE id = 1
	`)
	err := row.Scan(&s.FilePath, &s.Engine, &s.Subtune, &s.Loop, &s.DefaultTuneOnly, &s.PlaylistIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil session means first run, not an error
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func saveSession(sqlDB *sql.DB, s Session) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO session_state
			(id, file_path, engine, subtune, loop, default_tune_only, playlist_index, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				file_path = excluded.file_path,
				engine = excluded.engine,
				subtune = excluded.subtune,
				loop = excluded.loop,
				default_tune_only = excluded.default_tune_only,
				playlist_index = excluded.playlist_index,
				updated_at = excluded.updated_at
		`, s.FilePath, s.Engine, s.Subtune, s.Loop, s.DefaultTuneOnly, s.PlaylistIndex, time.Now().Unix())
		return err
	})
}
