package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNoSnapshot = errors.New("snapshot not found")

// SaveSnapshot upserts the snapshot payload stored under key.
func (db *DB) SaveSnapshot(ctx context.Context, key string, version int, data []byte) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO snapshots (key, version, data, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET version = $2, data = $3, updated_at = CURRENT_TIMESTAMP
	`, key, version, data)
	return err
}

// LoadSnapshot returns the payload stored under key, or ErrNoSnapshot.
func (db *DB) LoadSnapshot(ctx context.Context, key string) (int, []byte, error) {
	var version int
	var data []byte
	err := db.pool.QueryRow(ctx,
		"SELECT version, data FROM snapshots WHERE key = $1", key,
	).Scan(&version, &data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil, ErrNoSnapshot
		}
		return 0, nil, err
	}
	return version, data, nil
}
