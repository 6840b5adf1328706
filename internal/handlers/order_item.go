// internal/handlers/order_item.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/services"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

type OrderItemHandler struct {
	orderItemService *services.OrderItemService
}

func NewOrderItemHandler(orderItemService *services.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{orderItemService: orderItemService}
}

// GET /order-items
func (h *OrderItemHandler) GetOrderItems(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	listParams := services.OrderItemListParams{PaginationParams: params}

	if orderIDStr := c.Query("order_id"); orderIDStr != "" {
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidID, "order"), nil)
			return
		}
		listParams.OrderID = &orderID
	}

	items, total, err := h.orderItemService.FindAll(c.Request.Context(), listParams)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(items, total, params))
}

// GET /order-items/order/:orderId
func (h *OrderItemHandler) GetOrderItemsByOrder(c *gin.Context) {
	orderID, ok := parseID(c, "orderId", "order")
	if !ok {
		return
	}

	items, err := h.orderItemService.FindByOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, items)
}

// POST /order-items
func (h *OrderItemHandler) CreateOrderItem(c *gin.Context) {
	var req services.CreateOrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.orderItemService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, item)
		return
	}

	utils.CreatedResponse(c, item)
}

// GET /order-items/:id
func (h *OrderItemHandler) GetOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id", "order item")
	if !ok {
		return
	}

	item, err := h.orderItemService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, item)
}

// PUT|PATCH /order-items/:id
func (h *OrderItemHandler) UpdateOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id", "order item")
	if !ok {
		return
	}

	var req services.UpdateOrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.orderItemService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, item)
		return
	}

	utils.SuccessResponse(c, item)
}

// DELETE /order-items/:id
func (h *OrderItemHandler) DeleteOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id", "order item")
	if !ok {
		return
	}

	if err := h.orderItemService.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderItemDeleted),
		"id":      id,
	})
}
