package image

import (
	"context"
	"database/sql"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, img *Image) error {
	_, err := s.db.ExecContext(ctx,
		`insert into images(id, filename, original_name, mimetype, size, path)
		 values($1,$2,$3,$4,$5,$6)`,
		img.ID, img.Filename, img.OriginalName, img.Mimetype, img.Size, img.Path,
	)
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Image, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, filename, original_name, mimetype, size, path, created_at, updated_at
		 from images where id=$1`, id)
	var img Image
	err := row.Scan(&img.ID, &img.Filename, &img.OriginalName, &img.Mimetype,
		&img.Size, &img.Path, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}
