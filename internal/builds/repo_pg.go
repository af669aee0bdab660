package builds

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const buildColumns = `id, build_id, language, profiles, format, storage_key, content_type, size_bytes, checksum, created_at`

// Create inserts a build record.
func (r *PGRepo) Create(ctx context.Context, build Build) error {
	const query = `
INSERT INTO builds (
    ` + buildColumns + `
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		build.ID,
		build.BuildID,
		build.Language,
		build.Profiles,
		build.Format,
		build.StorageKey,
		build.ContentType,
		build.SizeBytes,
		build.Checksum,
		build.CreatedAt,
	)
	return err
}

// GetByID returns a build record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Build, error) {
	const query = `
SELECT ` + buildColumns + `
FROM builds
WHERE id = $1
LIMIT 1`
	build, err := scanBuild(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Build{}, ErrNotFound
		}
		return Build{}, err
	}
	return build, nil
}

// List lists build records ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Build, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + buildColumns + `
FROM builds
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	return r.query(ctx, query, limit, offset)
}

// ListByBuild lists the records of one build in creation order.
func (r *PGRepo) ListByBuild(ctx context.Context, buildID string) ([]Build, error) {
	const query = `
SELECT ` + buildColumns + `
FROM builds
WHERE build_id = $1
ORDER BY created_at ASC, id ASC`
	return r.query(ctx, query, buildID)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Build, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Build{}
	for rows.Next() {
		build, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, build)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (Build, error) {
	var build Build
	err := row.Scan(
		&build.ID,
		&build.BuildID,
		&build.Language,
		&build.Profiles,
		&build.Format,
		&build.StorageKey,
		&build.ContentType,
		&build.SizeBytes,
		&build.Checksum,
		&build.CreatedAt,
	)
	return build, err
}

var _ Repo = (*PGRepo)(nil)
