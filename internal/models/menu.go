package models

// MenuItem represents one purchasable item on the menu.
// Items are immutable once loaded; a reload replaces the list wholesale.
type MenuItem struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Price    float64 `json:"price" db:"price"`
	Category string  `json:"category" db:"category"`
	IsActive bool    `json:"is_active" db:"is_active"`
}
