package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"table-orders/internal/logger"
	"table-orders/internal/models"
)

type stubService struct {
	createResp *models.CreateOrderResponse
	createErr  error
	orders     []models.Order
	listErr    error
	updateResp *models.UpdateStatusResponse
	updateErr  error

	gotStatusFilter string
	createCalls     int
}

func (s *stubService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.CreateOrderResponse, error) {
	s.createCalls++
	return s.createResp, s.createErr
}

func (s *stubService) KitchenOrders(ctx context.Context, statusFilter, requestID string) ([]models.Order, error) {
	s.gotStatusFilter = statusFilter
	return s.orders, s.listErr
}

func (s *stubService) UpdateStatus(ctx context.Context, orderID int, newStatus models.OrderStatus, requestID string) (*models.UpdateStatusResponse, error) {
	return s.updateResp, s.updateErr
}

func (s *stubService) HealthCheck(ctx context.Context) bool { return true }

type stubMenu struct {
	items []models.MenuItem
}

func (m *stubMenu) ListActive(ctx context.Context, requestID string) ([]models.MenuItem, error) {
	return m.items, nil
}

func newTestHandler(svc *stubService, menu *stubMenu) *Handler {
	return NewHandler(svc, menu, logger.New("test"))
}

func TestGetMenu(t *testing.T) {
	menu := &stubMenu{items: []models.MenuItem{
		{ID: 1, Name: "Burger", Price: 35.0, Category: "Food", IsActive: true},
	}}
	h := newTestHandler(&stubService{}, menu)

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Burger" {
		t.Fatalf("unexpected menu response: %+v", items)
	}
}

func TestCreateOrder_ValidationRejectedBeforeService(t *testing.T) {
	svc := &stubService{}
	h := newTestHandler(svc, &stubMenu{})

	body := `{"table_code":"","items":[{"product_id":1,"qty":1,"comment":""}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service must not be called for invalid requests, got %d calls", svc.createCalls)
	}

	var errResp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp["detail"] == "" {
		t.Fatalf("expected detail field in error response")
	}
}

func TestCreateOrder_UnavailableProduct(t *testing.T) {
	svc := &stubService{createErr: &UnavailableProductError{ProductID: 9}}
	h := newTestHandler(svc, &stubMenu{})

	body := `{"table_code":"A3","items":[{"product_id":9,"qty":1,"comment":""}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var errResp map[string]string
	json.NewDecoder(rec.Body).Decode(&errResp)
	if errResp["detail"] != "Product 9 unavailable" {
		t.Fatalf("unexpected detail: %q", errResp["detail"])
	}
}

func TestGetKitchenOrders_StatusFilterPassthrough(t *testing.T) {
	svc := &stubService{orders: []models.Order{}}
	h := newTestHandler(svc, &stubMenu{})

	req := httptest.NewRequest(http.MethodGet, "/api/kitchen/orders?status=cooking", nil)
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotStatusFilter != "cooking" {
		t.Fatalf("expected status filter to reach the service, got %q", svc.gotStatusFilter)
	}
}

func TestGetKitchenOrders_UnknownStatus(t *testing.T) {
	h := newTestHandler(&stubService{}, &stubMenu{})

	req := httptest.NewRequest(http.MethodGet, "/api/kitchen/orders?status=burnt", nil)
	rec := httptest.NewRecorder()
	h.SetupRoutes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubService
		orderID    string
		body       string
		wantCode   int
		wantDetail string
	}{
		{
			name: "success",
			svc: &stubService{updateResp: &models.UpdateStatusResponse{
				OK: true, OrderID: 7, Status: models.StatusCooking,
			}},
			orderID:  "7",
			body:     `{"status":"cooking"}`,
			wantCode: http.StatusOK,
		},
		{
			name:       "not found",
			svc:        &stubService{updateErr: ErrOrderNotFound},
			orderID:    "999",
			body:       `{"status":"cooking"}`,
			wantCode:   http.StatusNotFound,
			wantDetail: "Order not found",
		},
		{
			name:       "terminal state",
			svc:        &stubService{updateErr: &InvalidTransitionError{Current: models.StatusCancelled}},
			orderID:    "7",
			body:       `{"status":"cooking"}`,
			wantCode:   http.StatusConflict,
			wantDetail: "already canceled",
		},
		{
			name:       "unknown status value",
			svc:        &stubService{},
			orderID:    "7",
			body:       `{"status":"burnt"}`,
			wantCode:   http.StatusBadRequest,
			wantDetail: `Unknown status "burnt"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.svc, &stubMenu{})

			req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+tt.orderID+"/status", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.SetupRoutes().ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantDetail != "" {
				var errResp map[string]string
				json.NewDecoder(rec.Body).Decode(&errResp)
				if errResp["detail"] != tt.wantDetail {
					t.Fatalf("expected detail %q, got %q", tt.wantDetail, errResp["detail"])
				}
			}
		})
	}
}
