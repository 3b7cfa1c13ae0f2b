package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) CreateBrand(ctx context.Context, q DBTX, name string) (*domain.Brand, error) {
	query := `INSERT INTO brands (name) VALUES ($1)
	          RETURNING id, name, created_at, updated_at`

	var b domain.Brand
	err := q.QueryRowContext(ctx, query, name).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return nil, ErrBrandTaken
		}
		return nil, fmt.Errorf("insert brand: %w", err)
	}
	return &b, nil
}

func (r *Repository) GetBrandByID(ctx context.Context, q DBTX, id uuid.UUID) (*domain.Brand, error) {
	var b domain.Brand
	err := q.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM brands WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBrandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query brand by id: %w", err)
	}
	return &b, nil
}

func (r *Repository) ListBrands(ctx context.Context, q DBTX) ([]*domain.Brand, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	var brands []*domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return brands, nil
}

func (r *Repository) UpdateBrand(ctx context.Context, q DBTX, id uuid.UUID, name string) (*domain.Brand, error) {
	var b domain.Brand
	err := q.QueryRowContext(ctx,
		`UPDATE brands SET name = $2, updated_at = NOW() WHERE id = $1
		 RETURNING id, name, created_at, updated_at`, id, name,
	).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBrandNotFound
	}
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return nil, ErrBrandTaken
		}
		return nil, fmt.Errorf("update brand: %w", err)
	}
	return &b, nil
}

func (r *Repository) DeleteBrand(ctx context.Context, q DBTX, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete brand rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBrandNotFound
	}
	return nil
}

func (r *Repository) CreateCategory(ctx context.Context, q DBTX, name string) (*domain.Category, error) {
	query := `INSERT INTO categories (name) VALUES ($1)
	          RETURNING id, name, created_at, updated_at`

	var c domain.Category
	err := q.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return nil, ErrCategoryTaken
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

func (r *Repository) GetCategoryByID(ctx context.Context, q DBTX, id uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	err := q.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category by id: %w", err)
	}
	return &c, nil
}

func (r *Repository) ListCategories(ctx context.Context, q DBTX) ([]*domain.Category, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, q DBTX, id uuid.UUID, name string) (*domain.Category, error) {
	var c domain.Category
	err := q.QueryRowContext(ctx,
		`UPDATE categories SET name = $2, updated_at = NOW() WHERE id = $1
		 RETURNING id, name, created_at, updated_at`, id, name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return nil, ErrCategoryTaken
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &c, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, q DBTX, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
