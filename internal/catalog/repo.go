package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, description, price, stock, img_url, category_id, user_id, created_at, updated_at`

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.ImgURL, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.ImgURL, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Newf(apperr.NotFound, "Product id:%d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) CreateProduct(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return apperr.New(apperr.Validation, "Product name is required")
	}
	if p.Price < 0 || p.Stock < 0 {
		return apperr.New(apperr.Validation, "Price and stock must not be negative")
	}
	return r.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, price, stock, img_url, category_id, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.Stock, p.ImgURL, p.CategoryID, p.UserID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *Repo) UpdateProduct(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return apperr.New(apperr.Validation, "Product name is required")
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, stock=$5, img_url=$6, category_id=$7, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.ImgURL, p.CategoryID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "Product id:%d not found", p.ID)
	}
	return nil
}

func (r *Repo) DeleteProduct(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "Product id:%d not found", id)
	}
	return nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, created_at, updated_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := r.DB.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Newf(apperr.NotFound, "Category with ID %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CreateCategory(ctx context.Context, c *Category) error {
	if c.Name == "" {
		return apperr.New(apperr.Validation, "Category name is required")
	}
	return r.DB.QueryRow(ctx, `
		INSERT INTO categories(name) VALUES ($1)
		RETURNING id, created_at, updated_at`, c.Name,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *Repo) UpdateCategory(ctx context.Context, c *Category) error {
	if c.Name == "" {
		return apperr.New(apperr.Validation, "Category name is required")
	}
	ct, err := r.DB.Exec(ctx, `UPDATE categories SET name=$2, updated_at=now() WHERE id=$1`, c.ID, c.Name)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "Category with ID %d not found", c.ID)
	}
	return nil
}

func (r *Repo) DeleteCategory(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "Category with ID %d not found", id)
	}
	return nil
}
