package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

type Repo struct{ DB *pgxpool.Pool }

// AddItem merges the requested quantity into the user's line for the product.
// The product row is locked for the duration of the check, so two concurrent
// adds for the same product serialize and cannot both pass the stock check;
// the unique (user_id, product_id) constraint backs the upsert.
func (r *Repo) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	if productID <= 0 || quantity <= 0 {
		return apperr.New(apperr.Validation, "ProductId and quantity are required and must be positive")
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var stock int
	err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1 FOR UPDATE`, productID).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.NotFound, "Product not found")
	}
	if err != nil {
		return err
	}

	existing := 0
	err = tx.QueryRow(ctx, `
		SELECT quantity FROM cart_items WHERE user_id=$1 AND product_id=$2`,
		userID, productID).Scan(&existing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing+quantity > stock {
		return apperr.New(apperr.Validation, "Insufficient stock")
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO cart_items(user_id, product_id, quantity)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`,
		userID, productID, quantity); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) ListItems(ctx context.Context, userID int64) ([]Line, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.price, p.img_url, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity,
			&l.Product.ID, &l.Product.Name, &l.Product.Price, &l.Product.ImgURL, &l.Product.Stock); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateItem overwrites the line's product and quantity, re-validating
// against the target product's current stock.
func (r *Repo) UpdateItem(ctx context.Context, userID, lineID, productID int64, quantity int) error {
	if lineID <= 0 {
		return apperr.New(apperr.Validation, "Invalid cart item ID")
	}
	if productID <= 0 || quantity <= 0 {
		return apperr.New(apperr.Validation, "ProductId and quantity are required and must be positive")
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var stock int
	err = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1 FOR UPDATE`, productID).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.Validation, "Invalid product")
	}
	if err != nil {
		return err
	}
	if quantity > stock {
		return apperr.New(apperr.Validation, "Insufficient stock")
	}

	ct, err := tx.Exec(ctx, `
		UPDATE cart_items SET product_id=$3, quantity=$4, updated_at=now()
		WHERE id=$1 AND user_id=$2`,
		lineID, userID, productID, quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "Cart item id:%d not found", lineID)
	}
	return tx.Commit(ctx)
}

// DeleteItem removes the line only when it belongs to the user; a foreign
// line reads the same as a missing one.
func (r *Repo) DeleteItem(ctx context.Context, userID, lineID int64) error {
	if lineID <= 0 {
		return apperr.New(apperr.Validation, "Invalid cart item ID")
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE id=$1 AND user_id=$2`, lineID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "Cart item id:%d not found", lineID)
	}
	return nil
}

func (r *Repo) Clear(ctx context.Context, userID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}

// ItemsForCheckout reads the cart joined with current prices in a single
// query, so the total and the item list come from one snapshot.
func (r *Repo) ItemsForCheckout(ctx context.Context, userID int64) ([]CheckoutItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.product_id, ci.quantity, p.name, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CheckoutItem
	for rows.Next() {
		var it CheckoutItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
