package cart

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milsabores/storefront/internal/catalog"
)

// Repo persists cart lines in postgres, keyed by (user_email, product_id).
type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

func (r *Repo) Add(ctx context.Context, userEmail string, p catalog.Product) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO cart_lines(user_email, product_id, code, name, category, image, unit_price, on_sale, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		ON CONFLICT (user_email, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + 1`,
		userEmail, p.ID, p.Code, p.Name, p.Category, p.Image, p.Price, p.OnSale,
	)
	return err
}

func (r *Repo) Increase(ctx context.Context, userEmail string, productID int64) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE cart_lines SET quantity = quantity + 1
		WHERE user_email=$1 AND product_id=$2`,
		userEmail, productID,
	)
	return err
}

func (r *Repo) Decrease(ctx context.Context, userEmail string, productID int64) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE cart_lines SET quantity = quantity - 1
		WHERE user_email=$1 AND product_id=$2 AND quantity > 1`,
		userEmail, productID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() > 0 {
		return nil
	}
	// quantity 1 (or no line at all): remove rather than keep a zero line
	_, err = r.DB.Exec(ctx, `
		DELETE FROM cart_lines WHERE user_email=$1 AND product_id=$2`,
		userEmail, productID,
	)
	return err
}

func (r *Repo) Remove(ctx context.Context, userEmail string, productID int64) error {
	_, err := r.DB.Exec(ctx, `
		DELETE FROM cart_lines WHERE user_email=$1 AND product_id=$2`,
		userEmail, productID,
	)
	return err
}

func (r *Repo) Clear(ctx context.Context, userEmail string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_lines WHERE user_email=$1`, userEmail)
	return err
}

// ClearTx is Clear running inside a caller-owned transaction; order placement
// uses it so the cart is emptied atomically with the order insert.
func (r *Repo) ClearTx(ctx context.Context, tx pgx.Tx, userEmail string) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_email=$1`, userEmail)
	return err
}

func (r *Repo) Lines(ctx context.Context, userEmail string) ([]Line, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, code, name, category, image, unit_price, on_sale, quantity
		FROM cart_lines WHERE user_email=$1 ORDER BY product_id`,
		userEmail,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.Product.ID, &l.Product.Code, &l.Product.Name,
			&l.Product.Category, &l.Product.Image, &l.Product.Price, &l.Product.OnSale, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
