package product

import (
	"context"
	"database/sql"
	"strings"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL. Image URLs are stored as a
// comma-separated text column, matching the original schema.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const productColumns = `id, title, description, price, width, height, quantity, image_urls, created_at, updated_at`

func joinURLs(urls []string) string {
	return strings.Join(urls, ",")
}

func splitURLs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var (
		p             Product
		width, height sql.NullFloat64
		urls          sql.NullString
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price,
		&width, &height, &p.Quantity, &urls, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if width.Valid {
		p.Width = &width.Float64
	}
	if height.Valid {
		p.Height = &height.Float64
	}
	if urls.Valid {
		p.ImageURLs = splitURLs(urls.String)
	}
	return &p, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func (s *PGStore) Create(ctx context.Context, p *Product) error {
	_, err := s.db.ExecContext(ctx,
		`insert into products(id, title, description, price, width, height, quantity, image_urls)
		 values($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Title, p.Description, p.Price, nullFloat(p.Width), nullFloat(p.Height), p.Quantity, joinURLs(p.ImageURLs),
	)
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+productColumns+` from products where id=$1`, id)
	return scanProduct(row)
}

func (s *PGStore) List(ctx context.Context) ([]*Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+productColumns+` from products order by created_at asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, p *Product) error {
	res, err := s.db.ExecContext(ctx,
		`update products
		 set title=$2, description=$3, price=$4, width=$5, height=$6, quantity=$7, image_urls=$8, updated_at=now()
		 where id=$1`,
		p.ID, p.Title, p.Description, p.Price, nullFloat(p.Width), nullFloat(p.Height), p.Quantity, joinURLs(p.ImageURLs),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from products where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
