package inventory

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemQty struct {
	ProductID int64
	Qty       int
}

type Repo struct{ DB *pgxpool.Pool }

// AlreadyDeducted short-circuits redelivered paid events for an order whose
// stock was deducted before.
func (r *Repo) AlreadyDeducted(ctx context.Context, orderID string) (bool, error) {
	var deducted bool
	err := r.DB.QueryRow(ctx, `
		SELECT stock_deducted FROM orders WHERE order_id=$1`, orderID).Scan(&deducted)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return deducted, nil
}

func (r *Repo) ItemsForOrder(ctx context.Context, orderID string) ([]ItemQty, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, quantity FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemQty
	for rows.Next() {
		var it ItemQty
		if err := rows.Scan(&it.ProductID, &it.Qty); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// DeductAll locks each product row, subtracts the paid quantity clamped at
// zero, and marks the order deducted, all in one transaction.
func (r *Repo) DeductAll(ctx context.Context, orderID string, items []ItemQty) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, it := range items {
		var stock int
		if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1 FOR UPDATE`, it.ProductID).Scan(&stock); err != nil {
			if err == pgx.ErrNoRows {
				continue // product deleted after purchase; nothing to deduct
			}
			return err
		}
		dec := it.Qty
		if dec > stock {
			log.Printf("order %s: product %d stock %d below paid qty %d, clamping",
				orderID, it.ProductID, stock, it.Qty)
			dec = stock
		}
		if dec == 0 {
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now() WHERE id=$1`,
			it.ProductID, dec); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders SET stock_deducted = TRUE WHERE order_id=$1`, orderID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
