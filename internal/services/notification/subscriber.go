package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"table-orders/internal/logger"
	"table-orders/internal/messaging"
	"table-orders/internal/models"
)

// Subscriber consumes order notifications and prints them for the crew
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start starts consuming notifications until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleNotification)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("notification consumer failed: %w", err)
	}
	return nil
}

// handleNotification processes one notification message. Both message kinds
// travel on the same fanout; the shape decides which one it is.
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var probe struct {
		NewStatus string `json:"new_status"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	if probe.NewStatus != "" {
		var statusChange models.StatusChangedMessage
		if err := json.Unmarshal(body, &statusChange); err != nil {
			return fmt.Errorf("failed to parse status change: %w", err)
		}
		fmt.Println(formatStatusChange(&statusChange))
		return nil
	}

	var placed models.OrderPlacedMessage
	if err := json.Unmarshal(body, &placed); err != nil {
		return fmt.Errorf("failed to parse placed order: %w", err)
	}
	fmt.Println(formatOrderPlaced(&placed))
	return nil
}

func formatOrderPlaced(msg *models.OrderPlacedMessage) string {
	timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")
	return fmt.Sprintf("[%s] New order #%d for table %s (%d items, %.2f total)",
		timestamp, msg.OrderID, msg.TableCode, len(msg.Items), msg.Total)
}

func formatStatusChange(msg *models.StatusChangedMessage) string {
	timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")

	switch models.OrderStatus(msg.NewStatus) {
	case models.StatusCooking:
		return fmt.Sprintf("[%s] Order #%d (table %s) is now being prepared", timestamp, msg.OrderID, msg.TableCode)
	case models.StatusReady:
		return fmt.Sprintf("[%s] Order #%d (table %s) is ready to serve", timestamp, msg.OrderID, msg.TableCode)
	case models.StatusDone:
		return fmt.Sprintf("[%s] Order #%d (table %s) has been served", timestamp, msg.OrderID, msg.TableCode)
	case models.StatusCancelled:
		return fmt.Sprintf("[%s] Order #%d (table %s) was canceled", timestamp, msg.OrderID, msg.TableCode)
	default:
		return fmt.Sprintf("[%s] Order #%d (table %s) moved from %s to %s",
			timestamp, msg.OrderID, msg.TableCode, msg.OldStatus, msg.NewStatus)
	}
}

// Close stops the underlying consumer
func (s *Subscriber) Close() error {
	if s.consumer != nil {
		return s.consumer.Close()
	}
	return nil
}
