// internal/domain/models.go
package domain

import "time"

// Department identifies the hotel outlet an order or inventory item belongs to.
type Department string

const (
	DepartmentFrontDesk    Department = "front_desk"
	DepartmentBar          Department = "bar"
	DepartmentKitchen      Department = "kitchen"
	DepartmentRestaurant   Department = "restaurant"
	DepartmentSpa          Department = "spa"
	DepartmentHousekeeping Department = "housekeeping"
)

// InventoryItem is a stocked ingredient or supply. The costing engine reads
// Unit and CostPrice and never mutates the row.
type InventoryItem struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Unit      string    `json:"unit" db:"unit"`
	CostPrice float64   `json:"cost_price" db:"cost_price"`
	Quantity  float64   `json:"quantity" db:"quantity"`
	Dept      string    `json:"department" db:"department"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RecipeIngredient is one line of a menu item's recipe. Unit may differ
// from the referenced inventory item's stocked unit.
type RecipeIngredient struct {
	InventoryID string  `json:"inventory_id" db:"inventory_id"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	Unit        string  `json:"unit" db:"unit"`
}

// MenuItem is a sellable item. An empty Ingredients list means the item is
// recipe-less and its cost is estimated from its sale price.
type MenuItem struct {
	ID          string             `json:"id" db:"id"`
	Name        string             `json:"name" db:"name"`
	Category    string             `json:"category" db:"category"`
	Price       float64            `json:"price" db:"price"`
	Dept        string             `json:"department" db:"department"`
	Available   bool               `json:"available" db:"available"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

// HasRecipe reports whether the item carries a non-empty ingredient list.
func (m MenuItem) HasRecipe() bool {
	return len(m.Ingredients) > 0
}

// OrderItem is a sold line. TotalPrice was computed when the order was
// placed and is trusted as-is; historical lines are never recosted.
type OrderItem struct {
	ID         string  `json:"id" db:"id"`
	OrderID    string  `json:"order_id" db:"order_id"`
	MenuItemID string  `json:"menu_item_id" db:"menu_item_id"`
	ItemName   string  `json:"item_name" db:"item_name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	UnitPrice  float64 `json:"unit_price" db:"unit_price"`
	TotalPrice float64 `json:"total_price" db:"total_price"`
}

// Order is the filtering unit for all reporting. An order belongs to a
// period when CreatedAt falls inside the closed date interval.
type Order struct {
	ID             string      `json:"id" db:"id"`
	RoomID         *string     `json:"room_id,omitempty" db:"room_id"`
	GuestName      string      `json:"guest_name" db:"guest_name"`
	Dept           string      `json:"department" db:"department"`
	OrderType      string      `json:"order_type" db:"order_type"`
	Status         string      `json:"status" db:"status"`
	PaymentStatus  string      `json:"payment_status" db:"payment_status"`
	Subtotal       float64     `json:"subtotal" db:"subtotal"`
	TaxAmount      float64     `json:"tax_amount" db:"tax_amount"`
	DiscountAmount float64     `json:"discount_amount" db:"discount_amount"`
	TotalAmount    float64     `json:"total_amount" db:"total_amount"`
	Items          []OrderItem `json:"items,omitempty"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// Room is a hotel room managed by the front desk.
type Room struct {
	ID        string    `json:"id" db:"id"`
	Number    string    `json:"number" db:"number"`
	RoomType  string    `json:"room_type" db:"room_type"`
	Rate      float64   `json:"rate" db:"rate"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Guest is a checked-in guest bound to a room.
type Guest struct {
	ID         string     `json:"id" db:"id"`
	RoomID     string     `json:"room_id" db:"room_id"`
	Name       string     `json:"name" db:"name"`
	Phone      string     `json:"phone" db:"phone"`
	CheckedIn  time.Time  `json:"checked_in" db:"checked_in"`
	CheckedOut *time.Time `json:"checked_out,omitempty" db:"checked_out"`
}

// StockAdjustment records a manual stock movement on an inventory item.
type StockAdjustment struct {
	ID          string    `json:"id" db:"id"`
	InventoryID string    `json:"inventory_id" db:"inventory_id"`
	Delta       float64   `json:"delta" db:"delta"`
	Reason      string    `json:"reason" db:"reason"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReportFilter selects the order set a report runs over. StartDate and
// EndDate are taken at the start and end of their respective days.
type ReportFilter struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Department string    `json:"department"`
	OrderType  string    `json:"order_type"`
	Status     string    `json:"status"`
}

// OrderFilter selects orders for the listing endpoints.
type OrderFilter struct {
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Department string     `json:"department"`
	Status     string     `json:"status"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}
