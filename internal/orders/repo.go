package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("orders: not found")

// Store is what the placement service and order reads need. Repo is the
// postgres implementation.
type Store interface {
	// Create persists the order and empties the buyer's cart as one atomic
	// step; on error neither happened.
	Create(ctx context.Context, o Order) error
	ListByUser(ctx context.Context, userEmail string) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
}

// CartClearer empties the buyer's cart inside the order transaction, so a
// placement either commits the order with an emptied cart or leaves both
// untouched.
type CartClearer interface {
	ClearTx(ctx context.Context, tx pgx.Tx, userEmail string) error
}

type Repo struct {
	DB    *pgxpool.Pool
	Carts CartClearer // optional
}

var _ Store = (*Repo)(nil)

// Create persists the order, its item snapshots and the cart clear in one
// transaction.
func (r *Repo) Create(ctx context.Context, o Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_email, buyer_name, buyer_email, shipping_address, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.UserEmail, o.BuyerName, o.BuyerEmail, o.ShippingAddress, o.Total, o.Status, o.CreatedAt,
	)
	if err != nil {
		return err
	}
	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, code, name, category, image, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.ID, it.ProductID, it.Code, it.Name, it.Category, it.Image, it.UnitPrice, it.Quantity,
		)
		if err != nil {
			return err
		}
	}
	if r.Carts != nil {
		if err := r.Carts.ClearTx(ctx, tx, o.UserEmail); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *Repo) ListByUser(ctx context.Context, userEmail string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_email, buyer_name, buyer_email, shipping_address, total, status, created_at
		FROM orders WHERE user_email=$1 ORDER BY created_at DESC`, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	byID := map[string]int{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserEmail, &o.BuyerName, &o.BuyerEmail,
			&o.ShippingAddress, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		byID[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, o := range out {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, code, name, category, image, unit_price, quantity
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var it Item
		if err := itemRows.Scan(&orderID, &it.ProductID, &it.Code, &it.Name,
			&it.Category, &it.Image, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, err
		}
		i := byID[orderID]
		out[i].Items = append(out[i].Items, it)
	}
	return out, itemRows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_email, buyer_name, buyer_email, shipping_address, total, status, created_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.UserEmail, &o.BuyerName, &o.BuyerEmail,
			&o.ShippingAddress, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT product_id, code, name, category, image, unit_price, quantity
		FROM order_items WHERE order_id=$1 ORDER BY id`, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Code, &it.Name, &it.Category,
			&it.Image, &it.UnitPrice, &it.Quantity); err != nil {
			return Order{}, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// SetStatus applies a guarded transition; anything else is a silent no-op so
// replayed events stay harmless.
func (r *Repo) SetStatus(ctx context.Context, id string, from, to Status) error {
	if !CanTransition(from, to) {
		return nil
	}
	_, err := r.DB.Exec(ctx, `UPDATE orders SET status=$3 WHERE id=$1 AND status=$2`, id, from, to)
	return err
}
