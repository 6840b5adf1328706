// internal/services/order_item_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

type OrderItemService struct {
	store     repository.Store
	teamSales *TeamSalesService
}

type CreateOrderItemRequest struct {
	OrderID   uuid.UUID       `json:"order_id" validate:"required"`
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Pound     decimal.Decimal `json:"pound"`
	Quantity  int             `json:"quantity"`
	// UnitPrice is kept as a snapshot on the item. The subtotal is always
	// priced from the stored product.
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type UpdateOrderItemRequest struct {
	OrderID   *uuid.UUID       `json:"order_id,omitempty"`
	ProductID *uuid.UUID       `json:"product_id,omitempty"`
	Pound     *decimal.Decimal `json:"pound,omitempty"`
	Quantity  *int             `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type OrderItemListParams struct {
	utils.PaginationParams
	OrderID *uuid.UUID
}

func NewOrderItemService(store repository.Store, teamSales *TeamSalesService) *OrderItemService {
	return &OrderItemService{
		store:     store,
		teamSales: teamSales,
	}
}

func validateItemValues(pound *decimal.Decimal, quantity *int, unitPrice *decimal.Decimal) error {
	if pound != nil && !pound.IsPositive() {
		return validationError("pound must be greater than 0")
	}
	if quantity != nil && *quantity <= 0 {
		return validationError("quantity must be greater than 0")
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return validationError("unit price cannot be negative")
	}
	return nil
}

func (s *OrderItemService) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "product", "")
	}
	return product, nil
}

func (s *OrderItemService) findOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "order", "")
	}
	return order, nil
}

// Create adds a line to an order and recalculates the order's team. As with
// orders, a failed recalculation returns the stored item alongside an error
// wrapping ErrRecalculation.
func (s *OrderItemService) Create(ctx context.Context, req *CreateOrderItemRequest) (*models.OrderItem, error) {
	if err := validateItemValues(&req.Pound, &req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	if _, err := s.findOrder(ctx, req.OrderID); err != nil {
		return nil, err
	}
	product, err := s.findProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	unitPrice := product.Price
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	item := &models.OrderItem{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Pound:     req.Pound,
		Quantity:  req.Quantity,
		UnitPrice: unitPrice,
		Subtotal:  ComputeSubtotal(product.Price, req.Pound, req.Quantity),
	}

	if err := s.store.OrderItems().Create(ctx, item); err != nil {
		return nil, storageError(err, "order item", "")
	}

	created, err := s.FindByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"order_item_id": created.ID,
		"order_id":      created.OrderID,
		"subtotal":      created.Subtotal.String(),
	}).Info("Order item created")

	if err := s.teamSales.RecalculateTeams(ctx, teamOf(created)); err != nil {
		return created, err
	}
	return created, nil
}

func teamOf(item *models.OrderItem) *uuid.UUID {
	if item == nil || item.Order == nil {
		return nil
	}
	return item.Order.TeamID
}

func (s *OrderItemService) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	item, err := s.store.OrderItems().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "order item", "")
	}
	return item, nil
}

func (s *OrderItemService) FindAll(ctx context.Context, params OrderItemListParams) ([]models.OrderItem, int64, error) {
	items, total, err := s.store.OrderItems().FindAll(ctx, repository.OrderItemFilter{
		Page:    pageOf(params.PaginationParams),
		OrderID: params.OrderID,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, total, nil
}

// FindByOrder lists every item of an order, oldest first.
func (s *OrderItemService) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if _, err := s.findOrder(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := s.store.OrderItems().FindByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}

// Update applies a patch. Changing the pound, quantity or product reprices
// the item from the product's current price. Moving the item to another
// order recalculates the teams of both orders.
func (s *OrderItemService) Update(ctx context.Context, id uuid.UUID, req *UpdateOrderItemRequest) (*models.OrderItem, error) {
	if err := validateItemValues(req.Pound, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Order, updated.Product = nil, nil

	if req.OrderID != nil && *req.OrderID != existing.OrderID {
		if _, err := s.findOrder(ctx, *req.OrderID); err != nil {
			return nil, err
		}
		updated.OrderID = *req.OrderID
	}
	if req.Pound != nil {
		updated.Pound = *req.Pound
	}
	if req.Quantity != nil {
		updated.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		updated.UnitPrice = *req.UnitPrice
	}

	productChanged := req.ProductID != nil && *req.ProductID != existing.ProductID
	if productChanged {
		updated.ProductID = *req.ProductID
	}

	if req.Pound != nil || req.Quantity != nil || req.ProductID != nil {
		product, err := s.findProduct(ctx, updated.ProductID)
		if err != nil {
			return nil, err
		}
		if productChanged && req.UnitPrice == nil {
			updated.UnitPrice = product.Price
		}
		updated.Subtotal = ComputeSubtotal(product.Price, updated.Pound, updated.Quantity)
	}

	if err := s.store.OrderItems().Update(ctx, &updated); err != nil {
		return nil, storageError(err, "order item", "")
	}

	result, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"order_item_id": id,
		"order_id":      result.OrderID,
		"subtotal":      result.Subtotal.String(),
	}).Info("Order item updated")

	if err := s.teamSales.RecalculateTeams(ctx, teamOf(existing), teamOf(result)); err != nil {
		return result, err
	}
	return result, nil
}

// Remove deletes an item and recalculates the team its order belonged to.
// The team is captured before the delete.
func (s *OrderItemService) Remove(ctx context.Context, id uuid.UUID) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	teamID := teamOf(existing)

	if err := s.store.OrderItems().Delete(ctx, id); err != nil {
		return storageError(err, "order item", "")
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"order_item_id": id,
		"order_id":      existing.OrderID,
	}).Info("Order item deleted")

	return s.teamSales.RecalculateTeams(ctx, teamID)
}
