package users

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, u *User) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users(username, email, phone_number, password, address, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PhoneNumber, u.Password, u.Address, u.Role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return apperr.New(apperr.Validation, "Email is already exists")
			}
			return apperr.New(apperr.Validation, "username is already exists")
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := r.scanOne(r.DB.QueryRow(ctx, `
		SELECT id, username, email, phone_number, password, address, role, created_at, updated_at
		FROM users WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Newf(apperr.NotFound, "User id:%d not found", id)
	}
	return u, err
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := r.scanOne(r.DB.QueryRow(ctx, `
		SELECT id, username, email, phone_number, password, address, role, created_at, updated_at
		FROM users WHERE email=$1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return u, err
}

func (r *Repo) Update(ctx context.Context, u *User) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE users SET username=$2, phone_number=$3, address=$4, updated_at=now()
		WHERE id=$1`,
		u.ID, u.Username, u.PhoneNumber, u.Address)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.New(apperr.Validation, "username is already exists")
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return apperr.Newf(apperr.NotFound, "User id:%d not found", u.ID)
	}
	return nil
}

func (r *Repo) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.Password,
		&u.Address, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
