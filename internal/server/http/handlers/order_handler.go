package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// IdempotencyKeyHeader lets clients retry order creation safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler serves order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	order, replay, err := h.facade.CreateOrder(c.Request.Context(), c.GetHeader(IdempotencyKeyHeader), req.CustomerName, toLineRequests(req.Items))
	if err != nil {
		respondError(c, err, "order")
		return
	}
	status := http.StatusCreated
	if replay {
		status = http.StatusOK
	}
	respondData(c, status, toOrderResponse(order))
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	order, err := h.facade.UpdateOrder(c.Request.Context(), c.Param("id"), req.CustomerName, toLineRequests(req.Items))
	if err != nil {
		respondError(c, err, "order")
		return
	}
	respondData(c, http.StatusOK, toOrderResponse(order))
}

// Cancel handles PATCH /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.facade.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "order")
		return
	}
	respondData(c, http.StatusOK, toOrderResponse(order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "order")
		return
	}
	respondData(c, http.StatusOK, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		respondError(c, err, "order")
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	respondData(c, http.StatusOK, resp)
}

// toLineRequests turns non-integer or missing quantities into zero so validation reports them.
func toLineRequests(items []dto.LineItemRequest) []model.LineRequest {
	lines := make([]model.LineRequest, 0, len(items))
	for _, item := range items {
		qty, err := item.Quantity.Int64()
		if err != nil {
			qty = 0
		}
		lines = append(lines, model.LineRequest{ProductID: item.ProductID, Quantity: qty})
	}
	return lines
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.LineItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal().StringFixed(2),
		})
	}
	return dto.OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.Number,
		CustomerName: order.CustomerName,
		Items:        items,
		TotalAmount:  order.TotalAmount.StringFixed(2),
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
