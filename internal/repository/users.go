package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone_number,
	       address, zip_code, city, country, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }, u *domain.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.PhoneNumber,
		&u.Address,
		&u.ZipCode,
		&u.City,
		&u.Country,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (r *Repository) CreateUser(ctx context.Context, q DBTX, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, phone_number,
	                             address, zip_code, city, country, role)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING ` + userColumns

	err := scanUser(q.QueryRowContext(ctx, query,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.PhoneNumber,
		u.Address,
		u.ZipCode,
		u.City,
		u.Country,
		u.Role,
	), u)
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, q DBTX, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u domain.User
	err := scanUser(q.QueryRowContext(ctx, query, id), &u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return &u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, q DBTX, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u domain.User
	err := scanUser(q.QueryRowContext(ctx, query, email), &u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return &u, nil
}

func (r *Repository) ListUsers(ctx context.Context, q DBTX) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return users, nil
}

func (r *Repository) UpdateUser(ctx context.Context, q DBTX, u *domain.User) error {
	query := `UPDATE users
	          SET email = $2, first_name = $3, last_name = $4, phone_number = $5,
	              address = $6, zip_code = $7, city = $8, country = $9, role = $10,
	              is_active = $11, updated_at = NOW()
	          WHERE id = $1
	          RETURNING ` + userColumns

	err := scanUser(q.QueryRowContext(ctx, query,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.PhoneNumber,
		u.Address,
		u.ZipCode,
		u.City,
		u.Country,
		u.Role,
		u.IsActive,
	), u)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, q DBTX, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
