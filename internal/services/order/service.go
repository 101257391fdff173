package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"table-orders/internal/database"
	"table-orders/internal/logger"
	"table-orders/internal/models"
	"table-orders/internal/services/menu"
)

// NotificationPublisher publishes order events for the kitchen crew.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, message interface{}) error
}

// Service owns order creation, kitchen listing and status transitions
type Service struct {
	db        *database.DB
	menu      *menu.Service
	publisher NotificationPublisher
	logger    *logger.Logger
}

// NewService creates a new order service
func NewService(db *database.DB, menuService *menu.Service, publisher NotificationPublisher, log *logger.Logger) *Service {
	return &Service{
		db:        db,
		menu:      menuService,
		publisher: publisher,
		logger:    log,
	}
}

// CreateOrder validates product availability, stores the order with
// name/price snapshots and publishes an order.placed notification.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.CreateOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	catalog, err := s.menu.GetByIDs(ctx, ids, requestID)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		product, ok := catalog[item.ProductID]
		if !ok || !product.IsActive {
			return nil, &UnavailableProductError{ProductID: item.ProductID}
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := models.Order{
		TableCode: req.TableCode,
		Status:    models.StatusPending,
	}

	err = tx.QueryRow(ctx, database.InsertOrderSQL, order.TableCode, order.Status).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	var total float64
	for _, item := range req.Items {
		product := catalog[item.ProductID]
		total += product.Price * float64(item.Qty)

		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			order.ID, item.ProductID, product.Name, item.Qty, product.Price, item.Comment)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}

		order.Items = append(order.Items, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			Name:        product.Name,
			Qty:         item.Qty,
			PriceAtTime: product.Price,
			Comment:     item.Comment,
		})
	}

	_, err = tx.Exec(ctx, database.InsertStatusLogSQL,
		order.ID, models.StatusPending, "customer", "Order placed")
	if err != nil {
		return nil, fmt.Errorf("failed to insert status log: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	message := models.NewOrderPlacedMessage(&order, models.RoundMoney(total))
	if err := s.publisher.PublishNotification(ctx, message); err != nil {
		// Notification delivery is best effort; the order is already stored.
		s.logger.Error("notification_publish_failed", "Failed to publish order placed notification", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
	}

	s.logger.Info("order_created", fmt.Sprintf("Order %d created for table %s", order.ID, order.TableCode), requestID, map[string]interface{}{
		"order_id":   order.ID,
		"table_code": order.TableCode,
		"total":      models.RoundMoney(total),
	})

	return &models.CreateOrderResponse{
		OrderID: order.ID,
		Status:  order.Status,
	}, nil
}

// KitchenOrders returns orders with their items, newest first. A non-empty
// statusFilter restricts the result to that exact status.
func (s *Service) KitchenOrders(ctx context.Context, statusFilter, requestID string) ([]models.Order, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if statusFilter != "" {
		rows, err = s.db.Query(ctx, database.GetKitchenOrdersByStatusSQL, statusFilter)
	} else {
		rows, err = s.db.Query(ctx, database.GetKitchenOrdersSQL)
	}
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query kitchen orders", requestID, err, nil)
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	var ids []int
	byID := make(map[int]int) // order id -> index in orders

	for rows.Next() {
		var order models.Order
		err := rows.Scan(&order.ID, &order.TableCode, &order.Status, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			s.logger.Error("db_scan_failed", "Failed to scan order row", requestID, err, nil)
			return nil, fmt.Errorf("database error: %w", err)
		}
		order.Items = []models.OrderItem{}
		byID[order.ID] = len(orders)
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err = rows.Err(); err != nil {
		s.logger.Error("db_rows_failed", "Error iterating order rows", requestID, err, nil)
		return nil, fmt.Errorf("database error: %w", err)
	}

	if len(orders) == 0 {
		return []models.Order{}, nil
	}

	itemRows, err := s.db.Query(ctx, database.GetOrderItemsSQL, ids)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query order items", requestID, err, nil)
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.OrderItem
		err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Qty, &item.PriceAtTime, &item.Comment)
		if err != nil {
			s.logger.Error("db_scan_failed", "Failed to scan order item row", requestID, err, nil)
			return nil, fmt.Errorf("database error: %w", err)
		}
		idx := byID[item.OrderID]
		orders[idx].Items = append(orders[idx].Items, item)
	}

	return orders, itemRows.Err()
}

// UpdateStatus transitions an order to a new status. Orders in a terminal
// state reject further transitions.
func (s *Service) UpdateStatus(ctx context.Context, orderID int, newStatus models.OrderStatus, requestID string) (*models.UpdateStatusResponse, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		id        int
		tableCode string
		current   models.OrderStatus
	)
	err = tx.QueryRow(ctx, database.GetOrderForUpdateSQL, orderID).Scan(&id, &tableCode, &current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("db_query_failed", "Failed to query order for update", requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, fmt.Errorf("database error: %w", err)
	}

	if current.Terminal() {
		return nil, &InvalidTransitionError{Current: current}
	}

	_, err = tx.Exec(ctx, database.UpdateOrderStatusSQL, newStatus, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	_, err = tx.Exec(ctx, database.InsertStatusLogSQL,
		orderID, newStatus, "kitchen", fmt.Sprintf("Status changed from %s to %s", current, newStatus))
	if err != nil {
		return nil, fmt.Errorf("failed to insert status log: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	message := models.NewStatusChangedMessage(orderID, tableCode, current, newStatus)
	if err := s.publisher.PublishNotification(ctx, message); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish status change notification", requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
	}

	s.logger.Info("status_updated", fmt.Sprintf("Order %d moved from %s to %s", orderID, current, newStatus), requestID, map[string]interface{}{
		"order_id":   orderID,
		"old_status": current,
		"new_status": newStatus,
	})

	return &models.UpdateStatusResponse{
		OK:      true,
		OrderID: orderID,
		Status:  newStatus,
	}, nil
}

// StatusHistory returns the audit log for one order, oldest first.
func (s *Service) StatusHistory(ctx context.Context, orderID int, requestID string) ([]models.StatusHistoryEntry, error) {
	rows, err := s.db.Query(ctx, database.GetStatusHistorySQL, orderID)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query status history", requestID, err, nil)
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var history []models.StatusHistoryEntry
	for rows.Next() {
		var entry models.StatusHistoryEntry
		err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes)
		if err != nil {
			s.logger.Error("db_scan_failed", "Failed to scan status history row", requestID, err, nil)
			return nil, fmt.Errorf("database error: %w", err)
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// HealthCheck checks the health of dependencies
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Database ping failed", "", err, nil)
		return false
	}
	return true
}
