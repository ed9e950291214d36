package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps all three key spaces in a single records table; seq
// preserves insertion order for List.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Init creates the records table if it does not exist yet.
func (s *PGStore) Init(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS records (
		space TEXT NOT NULL,
		key   TEXT NOT NULL,
		value JSONB NOT NULL,
		seq   BIGSERIAL,
		PRIMARY KEY (space, key)
	)`)
	return err
}

func (s *PGStore) Get(ctx context.Context, space, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM records WHERE space=$1 AND key=$2`, space, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *PGStore) Put(ctx context.Context, space, key string, value []byte) error {
	_, err := s.db.Exec(ctx, `INSERT INTO records (space, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (space, key) DO UPDATE SET value = EXCLUDED.value`, space, key, value)
	return err
}

func (s *PGStore) Delete(ctx context.Context, space, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM records WHERE space=$1 AND key=$2`, space, key)
	return err
}

func (s *PGStore) List(ctx context.Context, space string) ([][]byte, error) {
	rows, err := s.db.Query(ctx, `SELECT value FROM records WHERE space=$1 ORDER BY seq`, space)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([][]byte, 0)
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

var _ Store = (*PGStore)(nil)
