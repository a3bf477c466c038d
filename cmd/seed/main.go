package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with initial data",
		Commands: []*cli.Command{
			{
				Name:   "master",
				Usage:  "Seed master data (inventory, menu items, recipes, rooms)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runMasterSeeder,
			},
			{
				Name:   "orders",
				Usage:  "Seed historical orders and order items",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runOrderSeeder,
			},
			{
				Name:  "all",
				Usage: "Seed master data and historical orders",
				Flags: []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: func(c *cli.Context) error {
					if err := runMasterSeeder(c); err != nil {
						return fmt.Errorf("error seeding master data: %w", err)
					}
					if err := runOrderSeeder(c); err != nil {
						return fmt.Errorf("error seeding orders: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withTx(c *cli.Context, fn func(ctx context.Context, tx *sql.Tx, dataDir string) error) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, tx, c.String("data-dir")); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func runMasterSeeder(c *cli.Context) error {
	log.Println("Starting master data seeding...")
	err := withTx(c, func(ctx context.Context, tx *sql.Tx, dataDir string) error {
		if err := seedTable(ctx, tx, "inventory",
			[]string{"id", "name", "category", "unit", "cost_price", "quantity", "department"},
			filepath.Join(dataDir, "inventory.csv")); err != nil {
			return fmt.Errorf("failed to seed inventory: %w", err)
		}
		if err := seedTable(ctx, tx, "menu_items",
			[]string{"id", "name", "category", "price", "department", "available"},
			filepath.Join(dataDir, "menu_items.csv")); err != nil {
			return fmt.Errorf("failed to seed menu items: %w", err)
		}
		if err := seedRecipes(ctx, tx, dataDir); err != nil {
			return fmt.Errorf("failed to seed recipes: %w", err)
		}
		if err := seedTable(ctx, tx, "rooms",
			[]string{"id", "number", "room_type", "rate", "status"},
			filepath.Join(dataDir, "rooms.csv")); err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Println("Master data seeding completed successfully!")
	return nil
}

func runOrderSeeder(c *cli.Context) error {
	log.Println("Starting order seeding...")
	err := withTx(c, func(ctx context.Context, tx *sql.Tx, dataDir string) error {
		if err := seedOrders(ctx, tx, dataDir); err != nil {
			return fmt.Errorf("failed to seed orders: %w", err)
		}
		if err := seedOrderItems(ctx, tx, dataDir); err != nil {
			return fmt.Errorf("failed to seed order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Println("Order seeding completed successfully!")
	return nil
}

// seedTable upserts CSV rows keyed by id. Column values are passed through
// as strings and coerced by the database.
func seedTable(ctx context.Context, tx *sql.Tx, tableName string, columns []string, filePath string) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		tableName,
		buildColumnList(columns),
		strings.Join(placeholders, ", "),
		buildUpdateClause(columns),
	)

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		args := make([]interface{}, len(columns))
		for i, col := range columns {
			idx := getColumnIndex(header, col)
			if idx >= len(record) {
				return fmt.Errorf("column index %d out of bounds for column %q (record has %d columns)", idx, col, len(record))
			}
			args[i] = record[idx]
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert record into %s: %w", tableName, err)
		}
		rowCount++
	}

	log.Printf("Successfully seeded %s (%d records)\n", tableName, rowCount)
	return nil
}

// seedRecipes replaces each menu item's ingredient list with the rows from
// recipes.csv (menu_item_id, inventory_id, quantity, unit).
func seedRecipes(ctx context.Context, tx *sql.Tx, dataDir string) error {
	filePath := filepath.Join(dataDir, "recipes.csv")
	log.Printf("Seeding menu_item_ingredients from %s\n", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	menuIdx := getColumnIndex(header, "menu_item_id")
	invIdx := getColumnIndex(header, "inventory_id")
	qtyIdx := getColumnIndex(header, "quantity")
	unitIdx := getColumnIndex(header, "unit")

	cleared := make(map[string]bool)
	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		menuItemID := strings.TrimSpace(record[menuIdx])
		if !cleared[menuItemID] {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM menu_item_ingredients WHERE menu_item_id = $1", menuItemID); err != nil {
				return fmt.Errorf("failed to clear recipe for %s: %w", menuItemID, err)
			}
			cleared[menuItemID] = true
		}

		quantity, err := strconv.ParseFloat(strings.TrimSpace(record[qtyIdx]), 64)
		if err != nil {
			return fmt.Errorf("invalid quantity for %s: %w", menuItemID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO menu_item_ingredients (menu_item_id, inventory_id, quantity, unit)
			 VALUES ($1, $2, $3, $4)`,
			menuItemID, strings.TrimSpace(record[invIdx]), quantity, strings.TrimSpace(record[unitIdx]),
		); err != nil {
			return fmt.Errorf("failed to insert recipe line for %s: %w", menuItemID, err)
		}
		rowCount++
	}

	log.Printf("Successfully seeded menu_item_ingredients (%d records)\n", rowCount)
	return nil
}

func seedOrders(ctx context.Context, tx *sql.Tx, dataDir string) error {
	filePath := filepath.Join(dataDir, "orders.csv")
	log.Printf("Seeding orders from %s\n", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	const query = `
		INSERT INTO orders (
			id, room_id, guest_name, department, order_type, status,
			payment_status, subtotal, tax_amount, discount_amount,
			total_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		ON CONFLICT (id) DO NOTHING
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare order statement: %w", err)
	}
	defer stmt.Close()

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		get := func(col string) string {
			return strings.TrimSpace(record[getColumnIndex(header, col)])
		}

		if _, err := stmt.ExecContext(ctx,
			get("id"),
			nullIfEmpty(get("room_id")),
			get("guest_name"),
			get("department"),
			get("order_type"),
			get("status"),
			get("payment_status"),
			get("subtotal"),
			get("tax_amount"),
			get("discount_amount"),
			get("total_amount"),
			get("created_at"),
		); err != nil {
			return fmt.Errorf("failed to insert order %s: %w", get("id"), err)
		}

		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Seeded %d orders...", rowCount)
		}
	}

	log.Printf("Successfully seeded orders (%d records)\n", rowCount)
	return nil
}

func seedOrderItems(ctx context.Context, tx *sql.Tx, dataDir string) error {
	filePath := filepath.Join(dataDir, "order_items.csv")
	log.Printf("Seeding order_items from %s\n", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	const query = `
		INSERT INTO order_items (
			id, order_id, menu_item_id, item_name, quantity, unit_price, total_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare order item statement: %w", err)
	}
	defer stmt.Close()

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		get := func(col string) string {
			return strings.TrimSpace(record[getColumnIndex(header, col)])
		}

		if _, err := stmt.ExecContext(ctx,
			get("id"),
			get("order_id"),
			nullIfEmpty(get("menu_item_id")),
			get("item_name"),
			get("quantity"),
			get("unit_price"),
			get("total_price"),
		); err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", get("id"), err)
		}

		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Seeded %d order items...", rowCount)
		}
	}

	log.Printf("Successfully seeded order_items (%d records)\n", rowCount)
	return nil
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func buildColumnList(columns []string) string {
	return `"` + strings.Join(columns, `", "`) + `"`
}

func buildUpdateClause(columns []string) string {
	updates := make([]string, 0, len(columns))
	for _, col := range columns {
		if col != "id" { // Skip the conflict key column
			updates = append(updates, fmt.Sprintf(`"%s" = EXCLUDED."%s"`, col, col))
		}
	}
	return strings.Join(updates, ", ")
}

func getColumnIndex(header []string, column string) int {
	for i, h := range header {
		if h == column {
			return i
		}
	}

	panic(fmt.Sprintf("column %q not found in header: %v", column, header))
}
