package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pable/go-cs-smartban/internal/model"
)

// ComparisonKey is the fixed key the latest comparison is stored under.
const ComparisonKey = "currentMatchMapTable"

// Put stores value under key, replacing any previous value.
func (db *DB) Put(ctx context.Context, key string, value []byte) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv(key, value, updated_at) VALUES (?, ?, ?)`,
		key, string(value), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or nil if there is none.
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := db.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), nil
}

// Delete removes key. Missing keys are not an error.
func (db *DB) Delete(ctx context.Context, key string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// SaveComparison persists c under key. Last write wins.
func (db *DB) SaveComparison(ctx context.Context, key string, c model.StoredComparison) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode comparison: %w", err)
	}
	return db.Put(ctx, key, data)
}

// LoadComparison returns the comparison stored under key, or nil if none.
func (db *DB) LoadComparison(ctx context.Context, key string) (*model.StoredComparison, error) {
	data, err := db.Get(ctx, key)
	if err != nil || data == nil {
		return nil, err
	}
	var c model.StoredComparison
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode comparison: %w", err)
	}
	return &c, nil
}
