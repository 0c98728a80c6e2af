package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			file_path TEXT NOT NULL,
			engine TEXT NOT NULL,
			subtune INTEGER NOT NULL DEFAULT 1,
			loop INTEGER NOT NULL DEFAULT 0,
			default_tune_only INTEGER NOT NULL DEFAULT 0,
			playlist_index INTEGER NOT NULL DEFAULT -1,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
