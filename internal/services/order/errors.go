package order

import (
	"errors"
	"fmt"

	"table-orders/internal/models"
)

// ErrOrderNotFound is returned when the requested order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// UnavailableProductError is returned when an order references a product
// that does not exist or is not active.
type UnavailableProductError struct {
	ProductID int
}

func (e *UnavailableProductError) Error() string {
	return fmt.Sprintf("Product %d unavailable", e.ProductID)
}

// InvalidTransitionError is returned when an order in a terminal state
// receives a status transition command.
type InvalidTransitionError struct {
	Current models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return "already " + string(e.Current)
}
