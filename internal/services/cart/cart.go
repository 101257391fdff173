package cart

import (
	"table-orders/internal/models"
)

// Line is one row of the cart: a product with a quantity and an optional
// free-text comment. Price is snapshotted when the product is first added.
type Line struct {
	ProductID int
	Name      string
	Price     float64
	Qty       int
	Comment   string
}

// Cart aggregates a customer's in-progress order against a menu catalog.
// At most one line exists per product id; repeated additions bump the
// quantity instead of appending duplicates.
type Cart struct {
	catalog map[int]models.MenuItem
	lines   []Line
}

// New creates an empty cart over the given menu snapshot.
func New(menu []models.MenuItem) *Cart {
	catalog := make(map[int]models.MenuItem, len(menu))
	for _, item := range menu {
		catalog[item.ID] = item
	}
	return &Cart{catalog: catalog}
}

// AddItem adds one unit of the product to the cart. Unknown product ids
// are ignored.
func (c *Cart) AddItem(productID int) {
	product, ok := c.catalog[productID]
	if !ok {
		return
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Qty:       1,
		Comment:   "",
	})
}

// IncrementQty adds one unit to the line at index i.
func (c *Cart) IncrementQty(i int) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Qty++
}

// DecrementQty removes one unit from the line at index i. A line driven to
// zero is removed entirely, shifting the indices of subsequent lines;
// callers must re-resolve indices after any mutation.
func (c *Cart) DecrementQty(i int) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Qty--
	if c.lines[i].Qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetComment overwrites the comment of the line at index i verbatim.
// The empty string is valid and means "no comment".
func (c *Cart) SetComment(i int, text string) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Comment = text
}

// Total returns the cart total rounded half up to two decimal places.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Qty)
	}
	return models.RoundMoney(total)
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
