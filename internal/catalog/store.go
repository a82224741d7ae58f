package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("catalog: product not found")

type Store struct{ DB *pgxpool.Pool }

// ReplaceAll swaps the whole catalog in one transaction so readers never
// observe a partially replaced record set.
func (s *Store) ReplaceAll(ctx context.Context, products []Product) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		_, err := tx.Exec(ctx, `
			INSERT INTO products(id, code, category, name, price, image, on_sale)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.Code, p.Category, p.Name, p.Price, p.Image, p.OnSale,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) List(ctx context.Context) ([]Product, error) {
	rows, err := s.DB.Query(ctx, `SELECT id, code, category, name, price, image, on_sale
	                              FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Category, &p.Name, &p.Price, &p.Image, &p.OnSale); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := s.DB.QueryRow(ctx, `SELECT id, code, category, name, price, image, on_sale
	                           FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Code, &p.Category, &p.Name, &p.Price, &p.Image, &p.OnSale)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
