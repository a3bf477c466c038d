// internal/repository/report_repository.go
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ReportRepository loads the report snapshot (orders, order items, menu
// items with recipes, inventory) the costing engine runs over, plus the
// SQL-side COGS aggregate used as the independent figure in sync checks.
type ReportRepository interface {
	GetOrdersInPeriod(ctx context.Context, filter domain.ReportFilter) ([]domain.Order, error)
	GetOrderItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error)
	GetMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetInventory(ctx context.Context) ([]domain.InventoryItem, error)
	GetDepartmentCOGS(ctx context.Context, filter domain.ReportFilter) ([]domain.DepartmentCOGS, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetOrdersInPeriod(ctx context.Context, filter domain.ReportFilter) ([]domain.Order, error) {
	// Period boundaries are calendar days: the start date from midnight,
	// the end date through the end of its day.
	query := `
        SELECT id, room_id, guest_name, department, order_type, status,
               payment_status, subtotal, tax_amount, discount_amount,
               total_amount, created_at, updated_at
        FROM orders
        WHERE created_at >= $1::date
          AND created_at < ($2::date + INTERVAL '1 day')
    `

	args := []interface{}{
		filter.StartDate.Format("2006-01-02"),
		filter.EndDate.Format("2006-01-02"),
	}
	argCounter := 3

	var conditions []string
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argCounter))
		args = append(args, filter.Department)
		argCounter++
	}
	if filter.OrderType != "" {
		conditions = append(conditions, fmt.Sprintf("order_type = $%d", argCounter))
		args = append(args, filter.OrderType)
		argCounter++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, filter.Status)
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at"

	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("error getting orders in period: %w", err)
	}

	return orders, nil
}

func (r *reportRepository) GetOrderItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []domain.OrderItem{}, nil
	}

	query := `
        SELECT id, order_id, COALESCE(menu_item_id, '') AS menu_item_id,
               item_name, quantity, unit_price, total_price
        FROM order_items
        WHERE order_id = ANY($1::text[])
    `

	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(orderIDs)); err != nil {
		return nil, fmt.Errorf("error getting order items: %w", err)
	}

	return items, nil
}

func (r *reportRepository) GetMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	query := `
        SELECT id, name, category, price, department, available, created_at, updated_at
        FROM menu_items
    `

	var menuItems []domain.MenuItem
	if err := r.db.SelectContext(ctx, &menuItems, query); err != nil {
		return nil, fmt.Errorf("error getting menu items: %w", err)
	}

	ingredientQuery := `
        SELECT menu_item_id, inventory_id, quantity, unit
        FROM menu_item_ingredients
    `

	var rows []struct {
		MenuItemID  string  `db:"menu_item_id"`
		InventoryID string  `db:"inventory_id"`
		Quantity    float64 `db:"quantity"`
		Unit        string  `db:"unit"`
	}
	if err := r.db.SelectContext(ctx, &rows, ingredientQuery); err != nil {
		return nil, fmt.Errorf("error getting menu item ingredients: %w", err)
	}

	byMenuItem := make(map[string][]domain.RecipeIngredient)
	for _, row := range rows {
		byMenuItem[row.MenuItemID] = append(byMenuItem[row.MenuItemID], domain.RecipeIngredient{
			InventoryID: row.InventoryID,
			Quantity:    row.Quantity,
			Unit:        row.Unit,
		})
	}

	for i := range menuItems {
		menuItems[i].Ingredients = byMenuItem[menuItems[i].ID]
	}

	return menuItems, nil
}

func (r *reportRepository) GetInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `
        SELECT id, name, category, unit, cost_price, quantity, department,
               created_at, updated_at
        FROM inventory
    `

	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("error getting inventory: %w", err)
	}

	return items, nil
}

// GetDepartmentCOGS computes per-department COGS entirely in SQL. This is
// the report-side figure the sync verifier compares against the Go
// engine's order-item figure; it must never be derived from the engine's
// cached result or the sync check becomes tautological.
func (r *reportRepository) GetDepartmentCOGS(ctx context.Context, filter domain.ReportFilter) ([]domain.DepartmentCOGS, error) {
	periodWhere := `o.created_at >= $1::date
              AND o.created_at < ($2::date + INTERVAL '1 day')`
	args := []interface{}{
		filter.StartDate.Format("2006-01-02"),
		filter.EndDate.Format("2006-01-02"),
	}
	argCounter := 3
	if filter.Department != "" {
		periodWhere += fmt.Sprintf(" AND o.department = $%d", argCounter)
		args = append(args, filter.Department)
		argCounter++
	}
	if filter.OrderType != "" {
		periodWhere += fmt.Sprintf(" AND o.order_type = $%d", argCounter)
		args = append(args, filter.OrderType)
		argCounter++
	}
	if filter.Status != "" {
		periodWhere += fmt.Sprintf(" AND o.status = $%d", argCounter)
		args = append(args, filter.Status)
		argCounter++
	}

	query := `
        WITH period_items AS (
            SELECT oi.id, oi.menu_item_id, oi.item_name, oi.quantity,
                   oi.total_price, o.department
            FROM order_items oi
            JOIN orders o ON o.id = oi.order_id
            WHERE ` + periodWhere + `
        ),
        recipe_costs AS (
            SELECT pi.department,
                   SUM(
                       mii.quantity
                       * CASE LOWER(mii.unit)
                             WHEN 'g'     THEN 1
                             WHEN 'gram'  THEN 1
                             WHEN 'grams' THEN 1
                             WHEN 'kg'    THEN 1000
                             WHEN 'kgs'   THEN 1000
                             WHEN 'ml'    THEN 1
                             WHEN 'l'     THEN 1000
                             WHEN 'ltr'   THEN 1000
                             WHEN 'litre' THEN 1000
                             WHEN 'liter' THEN 1000
                             ELSE 1
                         END
                       / CASE LOWER(inv.unit)
                             WHEN 'g'     THEN 1
                             WHEN 'gram'  THEN 1
                             WHEN 'grams' THEN 1
                             WHEN 'kg'    THEN 1000
                             WHEN 'kgs'   THEN 1000
                             WHEN 'ml'    THEN 1
                             WHEN 'l'     THEN 1000
                             WHEN 'ltr'   THEN 1000
                             WHEN 'litre' THEN 1000
                             WHEN 'liter' THEN 1000
                             ELSE 1
                         END
                       * inv.cost_price
                       * pi.quantity
                   ) AS cost
            FROM period_items pi
            JOIN menu_item_ingredients mii ON mii.menu_item_id = pi.menu_item_id
            JOIN inventory inv ON inv.id = mii.inventory_id
            GROUP BY pi.department
        ),
        estimated_costs AS (
            SELECT pi.department,
                   SUM(pi.total_price * 0.30) AS cost
            FROM period_items pi
            WHERE pi.menu_item_id IS NULL
               OR NOT EXISTS (
                   SELECT 1 FROM menu_item_ingredients mii
                   WHERE mii.menu_item_id = pi.menu_item_id
               )
            GROUP BY pi.department
        )
        SELECT d.department,
               COALESCE(rc.cost, 0) + COALESCE(ec.cost, 0) AS total_cogs
        FROM (
            SELECT department FROM recipe_costs
            UNION
            SELECT department FROM estimated_costs
        ) d
        LEFT JOIN recipe_costs rc ON rc.department = d.department
        LEFT JOIN estimated_costs ec ON ec.department = d.department
        ORDER BY d.department
    `

	var results []domain.DepartmentCOGS
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("error getting department cogs: %w", err)
	}

	return results, nil
}
