package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/fantasy-roster/internal/platform/querybuilder"
)

const upsertSuffix = `ON CONFLICT (cache_key)
DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = NOW()`

// PostgresStore persists advice payloads so cached advice survives restarts
// and is shared between API replicas.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.Select("cache_key", "value", "updated_at").
		From(adviceKVTable).
		Where(qb.Eq("cache_key", key)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get kv entry query: %w", err)
	}

	var row kvEntryTableModel
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv entry key=%s: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := qb.InsertModel(adviceKVTable, kvEntryUpsertModel{Key: key, Value: value}, upsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert kv entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert kv entry key=%s: %w", key, err)
	}
	return nil
}

// DeleteStale removes rows untouched since cutoff. Every record inside such a
// row is at least as old as the row itself.
func (s *PostgresStore) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(adviceKVTable).
		Where(qb.Lt("updated_at", cutoff)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete stale kv entries query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale kv entries: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted kv entries: %w", err)
	}
	return affected, nil
}
