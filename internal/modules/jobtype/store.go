// README: Job type store backed by PostgreSQL.
package jobtype

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fieldops/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// GetName returns the display name for a job type. A missing job type
// yields ok=false rather than an error; enrichment must not fail a
// ranking over one absent name.
func (s *Store) GetName(ctx context.Context, id types.ID) (string, bool, error) {
	row := s.db.QueryRow(ctx, `SELECT name FROM job_types WHERE id = $1`, string(id))
	var name string
	err := row.Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}
