package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/hotelops/hms-backend/internal/repository/postgres"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
)

// CreateOrderInput is the POS order entry payload.
type CreateOrderInput struct {
	RoomID         *string                `json:"room_id,omitempty"`
	GuestName      string                 `json:"guest_name"`
	Department     string                 `json:"department" binding:"required"`
	OrderType      string                 `json:"order_type"`
	DiscountAmount float64                `json:"discount_amount"`
	Items          []CreateOrderItemInput `json:"items" binding:"required"`
}

type CreateOrderItemInput struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
}

// OrderService handles POS order entry. Line prices and totals are fixed
// at order time; later menu or tax changes never touch placed orders.
type OrderService struct {
	orders  *postgres.OrderRepository
	menu    *postgres.MenuRepository
	taxRate float64
}

func NewOrderService(orders *postgres.OrderRepository, menu *postgres.MenuRepository, taxRate float64) *OrderService {
	return &OrderService{orders: orders, menu: menu, taxRate: taxRate}
}

func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &domain.Order{
		ID:             uuid.NewString(),
		RoomID:         input.RoomID,
		GuestName:      input.GuestName,
		Dept:           input.Department,
		OrderType:      input.OrderType,
		Status:         "pending",
		PaymentStatus:  "unpaid",
		DiscountAmount: input.DiscountAmount,
	}

	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}

		menuItem, err := s.menu.GetByID(ctx, line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("resolve menu item %s: %w", line.MenuItemID, err)
		}
		if !menuItem.Available {
			return nil, fmt.Errorf("%s: %w", menuItem.Name, ErrMenuItemUnavailable)
		}

		item := domain.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			ItemName:   menuItem.Name,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			TotalPrice: float64(line.Quantity) * menuItem.Price,
		}
		order.Subtotal += item.TotalPrice
		order.Items = append(order.Items, item)
	}

	order.TaxAmount = order.Subtotal * s.taxRate
	order.TotalAmount = order.Subtotal + order.TaxAmount - order.DiscountAmount

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID).
		Str("department", order.Dept).
		Float64("total", order.TotalAmount).
		Int("items", len(order.Items)).
		Msg("order created")

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error) {
	return s.orders.List(ctx, filter)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	return s.orders.UpdatePaymentStatus(ctx, id, paymentStatus)
}
