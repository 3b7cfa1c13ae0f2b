package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/google/uuid"
)

// UpsertCartItem adds a product to the user's cart. Re-adding a product
// the cart already holds replaces the quantity instead of duplicating
// the line (unique on user_id, product_id).
func (r *Repository) UpsertCartItem(ctx context.Context, q DBTX, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	query := `INSERT INTO cart_items (user_id, product_id, quantity)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
	          RETURNING id, user_id, product_id, quantity, created_at, updated_at`

	var item domain.CartItem
	err := q.QueryRowContext(ctx, query, userID, productID, quantity).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if isPqCode(err, pqForeignKeyViolation) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}
	return &item, nil
}

func (r *Repository) UpdateCartItemQuantity(ctx context.Context, q DBTX, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	query := `UPDATE cart_items SET quantity = $3, updated_at = NOW()
	          WHERE user_id = $1 AND product_id = $2
	          RETURNING id, user_id, product_id, quantity, created_at, updated_at`

	var item domain.CartItem
	err := q.QueryRowContext(ctx, query, userID, productID, quantity).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update cart item quantity: %w", err)
	}
	return &item, nil
}

func (r *Repository) RemoveCartItem(ctx context.Context, q DBTX, userID, productID uuid.UUID) error {
	res, err := q.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove cart item rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ClearCart deletes every cart line the user owns. Clearing an already
// empty cart is not an error.
func (r *Repository) ClearCart(ctx context.Context, q DBTX, userID uuid.UUID) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// GetCartLines reads the user's cart joined with the referenced products.
// The join guarantees a price for every line; a dangling product reference
// cannot survive the schema's foreign keys.
func (r *Repository) GetCartLines(ctx context.Context, q DBTX, userID uuid.UUID) ([]domain.CartLine, error) {
	query := `SELECT ci.product_id, p.name, p.price, ci.quantity
	          FROM cart_items ci
	          JOIN products p ON p.id = ci.product_id
	          WHERE ci.user_id = $1
	          ORDER BY ci.created_at`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return lines, nil
}
