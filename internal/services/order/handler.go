package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"table-orders/internal/logger"
	"table-orders/internal/models"
)

// OrderAPI is the order service surface the handler depends on.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.CreateOrderResponse, error)
	KitchenOrders(ctx context.Context, statusFilter, requestID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int, newStatus models.OrderStatus, requestID string) (*models.UpdateStatusResponse, error)
	HealthCheck(ctx context.Context) bool
}

// MenuLister lists the active menu catalog.
type MenuLister interface {
	ListActive(ctx context.Context, requestID string) ([]models.MenuItem, error)
}

// Handler handles HTTP requests for the table-order API
type Handler struct {
	service OrderAPI
	menu    MenuLister
	logger  *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(service OrderAPI, menuService MenuLister, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		menu:    menuService,
		logger:  log,
	}
}

// GetMenu handles GET /api/menu requests
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	items, err := h.menu.ListActive(r.Context(), requestID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}

	h.writeJSON(w, http.StatusOK, items)
}

// CreateOrder handles POST /api/orders requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"table_code": req.TableCode,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.CreateOrder(ctx, &req, requestID)
	if err != nil {
		var unavailable *UnavailableProductError
		switch {
		case errors.As(err, &unavailable):
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
				"table_code": req.TableCode,
			})
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

// GetKitchenOrders handles GET /api/kitchen/orders requests
func (h *Handler) GetKitchenOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && !models.ValidStatus(statusFilter) {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown status %q", statusFilter))
		return
	}

	orders, err := h.service.KitchenOrders(r.Context(), statusFilter, requestID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus handles PATCH /api/orders/{id}/status requests
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	orderID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if !models.ValidStatus(req.Status) {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown status %q", req.Status))
		return
	}

	response, err := h.service.UpdateStatus(r.Context(), orderID, models.OrderStatus(req.Status), requestID)
	if err != nil {
		var transition *InvalidTransitionError
		switch {
		case errors.Is(err, ErrOrderNotFound):
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found")
		case errors.As(err, &transition):
			h.writeErrorResponse(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("status_update_failed", "Failed to update order status", requestID, err, map[string]interface{}{
				"order_id": orderID,
			})
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "api-server",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	h.writeJSON(w, status, response)
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/menu", h.withLogging(h.GetMenu))
	mux.HandleFunc("POST /api/orders", h.withLogging(h.CreateOrder))
	mux.HandleFunc("GET /api/kitchen/orders", h.withLogging(h.GetKitchenOrders))
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.withLogging(h.UpdateOrderStatus))
	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))

	return mux
}

// writeJSON writes a JSON response body with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, detail string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"detail": detail,
	})
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
