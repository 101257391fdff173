package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusDone      OrderStatus = "done"
	StatusCancelled OrderStatus = "canceled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusCooking, StatusReady, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// OrderItem is one line of a stored order. Name and price are snapshots
// taken at order time; later menu edits do not affect them.
type OrderItem struct {
	ID          int     `json:"id,omitempty" db:"id"`
	OrderID     int     `json:"order_id,omitempty" db:"order_id"`
	ProductID   int     `json:"product_id" db:"product_id"`
	Name        string  `json:"name" db:"name"`
	Qty         int     `json:"qty" db:"qty"`
	PriceAtTime float64 `json:"price_at_time" db:"price_at_time"`
	Comment     string  `json:"comment" db:"comment"`
}

// Order represents a customer order as owned by the server.
type Order struct {
	ID        int         `json:"order_id" db:"id"`
	TableCode string      `json:"table_code" db:"table_code"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"-" db:"updated_at"`
	Items     []OrderItem `json:"items"`
}

// CreateOrderItem is one line of an order creation request.
type CreateOrderItem struct {
	ProductID int    `json:"product_id"`
	Qty       int    `json:"qty"`
	Comment   string `json:"comment"`
}

// CreateOrderRequest represents the request to create a new order
type CreateOrderRequest struct {
	TableCode string            `json:"table_code"`
	Items     []CreateOrderItem `json:"items"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderID int         `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// UpdateStatusRequest represents a status transition command.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse acknowledges a status transition.
type UpdateStatusResponse struct {
	OK      bool        `json:"ok"`
	OrderID int         `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// StatusHistoryEntry is one row of an order's status audit log.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time   `json:"timestamp" db:"changed_at"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

// Validate checks the create order request against the API contract.
func (req *CreateOrderRequest) Validate() error {
	if len(req.TableCode) == 0 {
		return fmt.Errorf("table_code is required")
	}
	if len(req.TableCode) > 30 {
		return fmt.Errorf("table_code must not exceed 30 characters")
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("items array cannot be empty")
	}

	for i, item := range req.Items {
		if err := validateItem(item, i); err != nil {
			return err
		}
	}

	return nil
}

// validateItem validates a single order line
func validateItem(item CreateOrderItem, index int) error {
	prefix := fmt.Sprintf("items[%d]", index)

	if item.ProductID <= 0 {
		return fmt.Errorf("%s.product_id is required", prefix)
	}
	if item.Qty < 1 || item.Qty > 20 {
		return fmt.Errorf("%s.qty must be between 1 and 20", prefix)
	}

	return nil
}
