package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/frocone/internal/domain"
	"github.com/fjod/frocone/internal/orders"
	"github.com/go-chi/chi/v5"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
}

type OrderHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrderHandler(orders OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

// CreateOrderDTO accepts totalAmount as either a JSON string or a number.
type CreateOrderDTO struct {
	CustomerName        string           `json:"customerName"`
	CustomerEmail       string           `json:"customerEmail"`
	CustomerPhone       string           `json:"customerPhone"`
	OrderType           domain.OrderType `json:"orderType"`
	SpecialInstructions *string          `json:"specialInstructions"`
	Items               string           `json:"items"`
	TotalAmount         json.RawMessage  `json:"totalAmount"`
}

func (d CreateOrderDTO) toRequest() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		CustomerName:        d.CustomerName,
		CustomerEmail:       d.CustomerEmail,
		CustomerPhone:       d.CustomerPhone,
		OrderType:           d.OrderType,
		SpecialInstructions: d.SpecialInstructions,
		Items:               d.Items,
		TotalAmount:         coerceString(d.TotalAmount),
	}
}

func coerceString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	v := strings.TrimSpace(string(raw))
	if v == "null" {
		return ""
	}
	return v
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dto CreateOrderDTO
	if !decodeJSON(w, r, &dto) {
		return
	}

	order, err := h.orders.PlaceOrder(ctx, dto.toRequest())
	if err != nil {
		if respondValidation(w, err) {
			return
		}
		slog.ErrorContext(ctx, "create order failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	order, err := h.orders.GetOrder(ctx, id)
	if errors.Is(err, orders.ErrOrderNotFound) {
		respondMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "get order failed", "order_id", id, "error", err)
		respondMessage(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
