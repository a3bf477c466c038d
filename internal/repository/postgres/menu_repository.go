package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hotelops/hms-backend/internal/domain"
)

type MenuRepository struct {
	db *DB
}

func NewMenuRepository(db *DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO menu_items (id, name, category, price, department, available, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`
		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.Name, item.Category, item.Price, item.Dept, item.Available,
		); err != nil {
			return fmt.Errorf("failed to insert menu item: %w", err)
		}
		return insertIngredients(ctx, tx, item.ID, item.Ingredients)
	})
}

func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE menu_items
			SET name = $1, category = $2, price = $3, department = $4,
			    available = $5, updated_at = NOW()
			WHERE id = $6
		`
		result, err := tx.ExecContext(ctx, query,
			item.Name, item.Category, item.Price, item.Dept, item.Available, item.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update menu item: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("menu item %s: %w", item.ID, ErrNotFound)
		}

		// Recipe updates replace the full ingredient list.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM menu_item_ingredients WHERE menu_item_id = $1", item.ID); err != nil {
			return fmt.Errorf("failed to clear menu item ingredients: %w", err)
		}
		return insertIngredients(ctx, tx, item.ID, item.Ingredients)
	})
}

func insertIngredients(ctx context.Context, tx *sql.Tx, menuItemID string, ingredients []domain.RecipeIngredient) error {
	query := `
		INSERT INTO menu_item_ingredients (menu_item_id, inventory_id, quantity, unit)
		VALUES ($1, $2, $3, $4)
	`
	for _, ing := range ingredients {
		if _, err := tx.ExecContext(ctx, query, menuItemID, ing.InventoryID, ing.Quantity, ing.Unit); err != nil {
			return fmt.Errorf("failed to insert menu item ingredient: %w", err)
		}
	}
	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `
		SELECT id, name, category, price, department, available, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`

	var item domain.MenuItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("menu item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu item %s: %w", id, err)
	}

	ingredientQuery := `
		SELECT inventory_id, quantity, unit
		FROM menu_item_ingredients
		WHERE menu_item_id = $1
	`
	if err := r.db.SelectContext(ctx, &item.Ingredients, ingredientQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get ingredients for %s: %w", id, err)
	}

	return &item, nil
}

func (r *MenuRepository) List(ctx context.Context, department string) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, category, price, department, available, created_at, updated_at
		FROM menu_items
	`
	var args []interface{}
	if department != "" {
		query += " WHERE department = $1"
		args = append(args, department)
	}
	query += " ORDER BY category, name"

	var items []domain.MenuItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return items, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM menu_item_ingredients WHERE menu_item_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete menu item ingredients: %w", err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete menu item: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("menu item %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
