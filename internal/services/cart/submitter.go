package cart

import (
	"context"
	"strings"

	"table-orders/internal/client"
	"table-orders/internal/models"
)

// OrderCreator is the API surface the submitter needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error)
}

// Submitter validates and serializes a cart into an order creation request.
type Submitter struct {
	api OrderCreator
}

// NewSubmitter creates a submitter backed by the given API.
func NewSubmitter(api OrderCreator) *Submitter {
	return &Submitter{api: api}
}

// Receipt is the successful outcome of a submission.
type Receipt struct {
	OrderID int
	Status  models.OrderStatus
}

// Submit sends the cart as an order for the given table. Local
// preconditions are checked before any network call; on any failure the
// cart is left untouched so the customer can retry. On success the caller
// is expected to clear the cart.
func (s *Submitter) Submit(ctx context.Context, c *Cart, tableCode string) (*Receipt, error) {
	tableCode = strings.TrimSpace(tableCode)
	if tableCode == "" {
		return nil, &client.ValidationError{Reason: "table code is required"}
	}
	if c.Len() == 0 {
		return nil, &client.ValidationError{Reason: "cart is empty"}
	}

	lines := c.Lines()
	req := &models.CreateOrderRequest{
		TableCode: tableCode,
		Items:     make([]models.CreateOrderItem, 0, len(lines)),
	}
	for _, line := range lines {
		req.Items = append(req.Items, models.CreateOrderItem{
			ProductID: line.ProductID,
			Qty:       line.Qty,
			Comment:   line.Comment,
		})
	}

	resp, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Receipt{
		OrderID: resp.OrderID,
		Status:  resp.Status,
	}, nil
}
