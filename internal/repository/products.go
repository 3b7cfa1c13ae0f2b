package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/google/uuid"
)

const productColumns = `id, barcode, name, description, image_url, brand_id, category_id,
	       price, energy_kcal, fat, carbs, protein, salt, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *domain.Product) error {
	return row.Scan(
		&p.ID,
		&p.Barcode,
		&p.Name,
		&p.Description,
		&p.ImageURL,
		&p.BrandID,
		&p.CategoryID,
		&p.Price,
		&p.EnergyKcal,
		&p.Fat,
		&p.Carbs,
		&p.Protein,
		&p.Salt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *Repository) CreateProduct(ctx context.Context, q DBTX, p *domain.Product) error {
	query := `INSERT INTO products (barcode, name, description, image_url, brand_id, category_id,
	                                price, energy_kcal, fat, carbs, protein, salt)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING ` + productColumns

	err := scanProduct(q.QueryRowContext(ctx, query,
		p.Barcode,
		p.Name,
		p.Description,
		p.ImageURL,
		p.BrandID,
		p.CategoryID,
		p.Price,
		p.EnergyKcal,
		p.Fat,
		p.Carbs,
		p.Protein,
		p.Salt,
	), p)
	if err != nil {
		if isPqCode(err, pqForeignKeyViolation) {
			return ErrProductRefMissing
		}
		if isPqCode(err, pqUniqueViolation) {
			return fmt.Errorf("barcode conflict: %w", err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repository) GetProductByID(ctx context.Context, q DBTX, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	err := scanProduct(q.QueryRowContext(ctx, query, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return &p, nil
}

func (r *Repository) GetProductByBarcode(ctx context.Context, q DBTX, barcode string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`

	var p domain.Product
	err := scanProduct(q.QueryRowContext(ctx, query, barcode), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by barcode: %w", err)
	}
	return &p, nil
}

func (r *Repository) ListProducts(ctx context.Context, q DBTX) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, q DBTX, p *domain.Product) error {
	query := `UPDATE products
	          SET barcode = $2, name = $3, description = $4, image_url = $5, brand_id = $6,
	              category_id = $7, price = $8, energy_kcal = $9, fat = $10, carbs = $11,
	              protein = $12, salt = $13, updated_at = NOW()
	          WHERE id = $1
	          RETURNING ` + productColumns

	err := scanProduct(q.QueryRowContext(ctx, query,
		p.ID,
		p.Barcode,
		p.Name,
		p.Description,
		p.ImageURL,
		p.BrandID,
		p.CategoryID,
		p.Price,
		p.EnergyKcal,
		p.Fat,
		p.Carbs,
		p.Protein,
		p.Salt,
	), p)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		if isPqCode(err, pqForeignKeyViolation) {
			return ErrProductRefMissing
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, q DBTX, id uuid.UUID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
