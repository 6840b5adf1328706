// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/services"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.FindAll(c.Request.Context(), services.OrderListParams{PaginationParams: params})
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, order)
		return
	}

	utils.CreatedResponse(c, order)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT|PATCH /orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	var req services.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, order)
		return
	}

	utils.SuccessResponse(c, order)
}

// DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderDeleted),
		"id":      id,
	})
}
