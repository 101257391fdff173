package database

// Menu queries
const (
	GetActiveMenuItemsSQL = `
		SELECT id, name, price, category, is_active
		FROM menu_items
		WHERE is_active = TRUE
		ORDER BY id ASC`

	GetMenuItemsByIDsSQL = `
		SELECT id, name, price, category, is_active
		FROM menu_items
		WHERE id = ANY($1)`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (table_code, status)
		VALUES ($1, $2)
		RETURNING id, created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, product_id, name, qty, price_at_time, comment)
		VALUES ($1, $2, $3, $4, $5, $6)`

	InsertStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	GetOrderForUpdateSQL = `
		SELECT id, table_code, status
		FROM orders
		WHERE id = $1
		FOR UPDATE`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2`

	GetKitchenOrdersSQL = `
		SELECT id, table_code, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC`

	GetKitchenOrdersByStatusSQL = `
		SELECT id, table_code, status, created_at, updated_at
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC`

	GetOrderItemsSQL = `
		SELECT id, order_id, product_id, name, qty, price_at_time, comment
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC`

	GetStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC`
)
