package checkout

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, o *Order, items []OrderItem) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(order_id, user_id, flow, gross_amount, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		o.OrderID, o.UserID, o.Flow, o.GrossAmount, o.Status,
	).Scan(&o.CreatedAt)
	if err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, price)
			VALUES ($1,$2,$3,$4)`,
			o.OrderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Owner resolves the user an order belongs to.
func (r *Repo) Owner(ctx context.Context, orderID string) (int64, error) {
	var userID int64
	err := r.DB.QueryRow(ctx, `SELECT user_id FROM orders WHERE order_id=$1`, orderID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.Newf(apperr.NotFound, "Order %s not found", orderID)
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *Repo) MarkPaid(ctx context.Context, orderID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE orders SET status=$2, paid_at=now()
		WHERE order_id=$1 AND status <> $2`, orderID, StatusPaid)
	return err
}
