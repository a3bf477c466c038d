package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hotelops/hms-backend/internal/domain"
)

type InventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, name, category, unit, cost_price, quantity, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Category, item.Unit, item.CostPrice, item.Quantity, item.Dept,
	); err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory
		SET name = $1, category = $2, unit = $3, cost_price = $4,
		    quantity = $5, department = $6, updated_at = NOW()
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Category, item.Unit, item.CostPrice, item.Quantity, item.Dept, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("inventory item %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	query := `
		SELECT id, name, category, unit, cost_price, quantity, department, created_at, updated_at
		FROM inventory
		WHERE id = $1
	`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get inventory item %s: %w", id, err)
	}
	return &item, nil
}

func (r *InventoryRepository) List(ctx context.Context, department string) ([]domain.InventoryItem, error) {
	query := `
		SELECT id, name, category, unit, cost_price, quantity, department, created_at, updated_at
		FROM inventory
	`
	var args []interface{}
	if department != "" {
		query += " WHERE department = $1"
		args = append(args, department)
	}
	query += " ORDER BY category, name"

	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// AdjustStock records a stock adjustment and applies the delta to the item
// in one transaction.
func (r *InventoryRepository) AdjustStock(ctx context.Context, adjustment *domain.StockAdjustment) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE inventory SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2",
			adjustment.Delta, adjustment.InventoryID)
		if err != nil {
			return fmt.Errorf("failed to apply stock adjustment: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("inventory item %s: %w", adjustment.InventoryID, ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stock_adjustments (id, inventory_id, delta, reason, created_at)
			 VALUES ($1, $2, $3, $4, NOW())`,
			adjustment.ID, adjustment.InventoryID, adjustment.Delta, adjustment.Reason,
		); err != nil {
			return fmt.Errorf("failed to record stock adjustment: %w", err)
		}
		return nil
	})
}

// UpdateCostPrice sets the cost price of the item matched by name. Used by
// the price-list ingestion; returns the number of rows touched so the
// caller can report unmatched lines.
func (r *InventoryRepository) UpdateCostPrice(ctx context.Context, name string, costPrice float64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE inventory SET cost_price = $1, updated_at = NOW() WHERE LOWER(name) = LOWER($2)",
		costPrice, name)
	if err != nil {
		return 0, fmt.Errorf("failed to update cost price for %q: %w", name, err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
	}
	return nil
}
