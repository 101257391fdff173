package menu

import (
	"context"
	"fmt"

	"table-orders/internal/database"
	"table-orders/internal/logger"
	"table-orders/internal/models"
)

// Service provides read access to the menu catalog
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new menu service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// ListActive returns all active menu items
func (s *Service) ListActive(ctx context.Context, requestID string) ([]models.MenuItem, error) {
	rows, err := s.db.Query(ctx, database.GetActiveMenuItemsSQL)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query menu items", requestID, err, nil)
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &item.IsActive)
		if err != nil {
			s.logger.Error("db_scan_failed", "Failed to scan menu item row", requestID, err, nil)
			return nil, fmt.Errorf("database error: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		s.logger.Error("db_rows_failed", "Error iterating menu item rows", requestID, err, nil)
		return nil, fmt.Errorf("database error: %w", err)
	}

	return items, nil
}

// GetByIDs returns menu items keyed by id for the requested ids.
// Missing ids are simply absent from the result.
func (s *Service) GetByIDs(ctx context.Context, ids []int, requestID string) (map[int]models.MenuItem, error) {
	rows, err := s.db.Query(ctx, database.GetMenuItemsByIDsSQL, ids)
	if err != nil {
		s.logger.Error("db_query_failed", "Failed to query menu items by ids", requestID, err, nil)
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	items := make(map[int]models.MenuItem, len(ids))
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &item.IsActive)
		if err != nil {
			s.logger.Error("db_scan_failed", "Failed to scan menu item row", requestID, err, nil)
			return nil, fmt.Errorf("database error: %w", err)
		}
		items[item.ID] = item
	}

	return items, rows.Err()
}
