package journal

import (
	"database/sql"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS journal_events (
	room_id TEXT NOT NULL,
	version BIGINT NOT NULL,
	body JSONB NOT NULL,
	PRIMARY KEY (room_id, version)
);`

const postgresInsert = `INSERT INTO journal_events (room_id, version, body) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`

func newPostgresStore(dsn string) (Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &sqlStore{db: db, insert: postgresInsert}, nil
}
