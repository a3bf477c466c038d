package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hotelops/hms-backend/internal/domain"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		orderQuery := `
			INSERT INTO orders (
				id, room_id, guest_name, department, order_type, status,
				payment_status, subtotal, tax_amount, discount_amount,
				total_amount, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		`
		if _, err := tx.ExecContext(ctx, orderQuery,
			order.ID,
			order.RoomID,
			order.GuestName,
			order.Dept,
			order.OrderType,
			order.Status,
			order.PaymentStatus,
			order.Subtotal,
			order.TaxAmount,
			order.DiscountAmount,
			order.TotalAmount,
		); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (
				id, order_id, menu_item_id, item_name, quantity, unit_price, total_price
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for _, item := range order.Items {
			menuItemID := sql.NullString{String: item.MenuItemID, Valid: item.MenuItemID != ""}
			if _, err := tx.ExecContext(ctx, itemQuery,
				item.ID,
				order.ID,
				menuItemID,
				item.ItemName,
				item.Quantity,
				item.UnitPrice,
				item.TotalPrice,
			); err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, room_id, guest_name, department, order_type, status,
		       payment_status, subtotal, tax_amount, discount_amount,
		       total_amount, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}

	itemQuery := `
		SELECT id, order_id, COALESCE(menu_item_id, '') AS menu_item_id,
		       item_name, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
	`
	if err := r.db.SelectContext(ctx, &order.Items, itemQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get order items for %s: %w", id, err)
	}

	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	baseWhere := " WHERE 1=1"
	var args []interface{}
	argCounter := 1

	var conditions []string
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d::date", argCounter))
		args = append(args, filter.StartDate.Format("2006-01-02"))
		argCounter++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < ($%d::date + INTERVAL '1 day')", argCounter))
		args = append(args, filter.EndDate.Format("2006-01-02"))
		argCounter++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argCounter))
		args = append(args, filter.Department)
		argCounter++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, filter.Status)
		argCounter++
	}

	if len(conditions) > 0 {
		baseWhere += " AND " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders"+baseWhere, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT id, room_id, guest_name, department, order_type, status,
		       payment_status, subtotal, tax_amount, discount_amount,
		       total_amount, created_at, updated_at
		FROM orders` + baseWhere + " ORDER BY created_at DESC"

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	args = append(args, pageSize, (page-1)*pageSize)

	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2", paymentStatus, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}
