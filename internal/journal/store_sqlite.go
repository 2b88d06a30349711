package journal

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS journal_events (
	room_id TEXT NOT NULL,
	version INTEGER NOT NULL,
	body TEXT NOT NULL,
	PRIMARY KEY (room_id, version)
);`

const sqliteInsert = `INSERT OR IGNORE INTO journal_events (room_id, version, body) VALUES (?, ?, ?)`

func newSQLiteStore(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &sqlStore{db: db, insert: sqliteInsert}, nil
}
