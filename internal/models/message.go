package models

import "time"

// OrderPlacedMessage announces a freshly created order to the kitchen crew.
type OrderPlacedMessage struct {
	OrderID   int         `json:"order_id"`
	TableCode string      `json:"table_code"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	Timestamp time.Time   `json:"timestamp"`
}

// StatusChangedMessage announces an order status transition.
type StatusChangedMessage struct {
	OrderID   int       `json:"order_id"`
	TableCode string    `json:"table_code"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderPlacedMessage builds the notification for a created order.
func NewOrderPlacedMessage(order *Order, total float64) *OrderPlacedMessage {
	return &OrderPlacedMessage{
		OrderID:   order.ID,
		TableCode: order.TableCode,
		Total:     total,
		Items:     order.Items,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusChangedMessage builds the notification for a status transition.
func NewStatusChangedMessage(orderID int, tableCode string, oldStatus, newStatus OrderStatus) *StatusChangedMessage {
	return &StatusChangedMessage{
		OrderID:   orderID,
		TableCode: tableCode,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		Timestamp: time.Now().UTC(),
	}
}
