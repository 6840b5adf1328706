// internal/services/order_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

const duplicateBookNumberMessage = "book number and number combination already exists"

type OrderService struct {
	store     repository.Store
	teamSales *TeamSalesService
}

type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" validate:"required"`
	ClassroomID  *uuid.UUID         `json:"classroom_id,omitempty"`
	TeamID       *uuid.UUID         `json:"team_id,omitempty"`
	OrderDate    *time.Time         `json:"order_date,omitempty"`
	TotalPrice   decimal.Decimal    `json:"total_price"`
	BookNumber   int                `json:"book_number" validate:"gte=0"`
	Number       int                `json:"number" validate:"gte=0"`
	Phone        string             `json:"phone" validate:"max=50"`
	PickupDate   *time.Time         `json:"pickup_date,omitempty"`
	Depository   string             `json:"depository,omitempty"`
	Deposit      decimal.Decimal    `json:"deposit"`
	Advisor      string             `json:"advisor"`
	Status       models.OrderStatus `json:"status,omitempty" validate:"omitempty,oneof=pending complete cancelled"`
}

// UpdateOrderRequest is a patch: nil fields keep their stored value.
// TeamID and ClassroomID accept an explicit null to detach the order.
type UpdateOrderRequest struct {
	CustomerName *string             `json:"customer_name,omitempty"`
	ClassroomID  OptionalUUID        `json:"classroom_id"`
	TeamID       OptionalUUID        `json:"team_id"`
	OrderDate    *time.Time          `json:"order_date,omitempty"`
	TotalPrice   *decimal.Decimal    `json:"total_price,omitempty"`
	BookNumber   *int                `json:"book_number,omitempty" validate:"omitempty,gte=0"`
	Number       *int                `json:"number,omitempty" validate:"omitempty,gte=0"`
	Phone        *string             `json:"phone,omitempty" validate:"omitempty,max=50"`
	PickupDate   *time.Time          `json:"pickup_date,omitempty"`
	Depository   *string             `json:"depository,omitempty"`
	Deposit      *decimal.Decimal    `json:"deposit,omitempty"`
	Advisor      *string             `json:"advisor,omitempty"`
	Status       *models.OrderStatus `json:"status,omitempty" validate:"omitempty,oneof=pending complete cancelled"`
}

// OptionalUUID tells an absent JSON field apart from an explicit null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func SetUUID(id uuid.UUID) OptionalUUID {
	return OptionalUUID{Set: true, Value: &id}
}

type OrderListParams struct {
	utils.PaginationParams
}

func NewOrderService(store repository.Store, teamSales *TeamSalesService) *OrderService {
	return &OrderService{
		store:     store,
		teamSales: teamSales,
	}
}

func validateOrderAmounts(totalPrice, deposit decimal.Decimal) error {
	if totalPrice.IsNegative() {
		return validationError("total price cannot be negative")
	}
	if deposit.IsNegative() {
		return validationError("deposit cannot be negative")
	}
	if deposit.GreaterThan(totalPrice) {
		return validationError("deposit cannot be greater than total price")
	}
	return nil
}

// Create stores a new order. When the order belongs to a team the team's
// totals are recalculated; if that fails the order is returned together with
// an error wrapping ErrRecalculation.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, validationError("customer name is required and cannot be empty")
	}
	if err := validateOrderAmounts(req.TotalPrice, req.Deposit); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !status.Valid() {
		return nil, validationError(fmt.Sprintf("invalid order status %q", status))
	}

	if err := s.ensureBookNumberFree(ctx, req.BookNumber, req.Number, uuid.Nil); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName: strings.TrimSpace(req.CustomerName),
		ClassroomID:  req.ClassroomID,
		TeamID:       req.TeamID,
		OrderDate:    req.OrderDate,
		TotalPrice:   req.TotalPrice,
		BookNumber:   req.BookNumber,
		Number:       req.Number,
		Phone:        req.Phone,
		PickupDate:   req.PickupDate,
		Depository:   req.Depository,
		Deposit:      req.Deposit,
		Advisor:      req.Advisor,
		Status:       status,
	}

	if err := s.store.Orders().Create(ctx, order); err != nil {
		return nil, storageError(err, "order", duplicateBookNumberMessage)
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"order_id": order.ID,
		"team_id":  order.TeamID,
	}).Info("Order created")

	created, err := s.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	if err := s.teamSales.RecalculateTeams(ctx, created.TeamID); err != nil {
		return created, err
	}
	return created, nil
}

func (s *OrderService) ensureBookNumberFree(ctx context.Context, bookNumber, number int, self uuid.UUID) error {
	existing, err := s.store.Orders().FindByBookNumberAndNumber(ctx, bookNumber, number)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("database error: %w", err)
	case existing.ID != self:
		return conflictError(duplicateBookNumberMessage)
	}
	return nil
}

func (s *OrderService) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "order", "")
	}
	return order, nil
}

func (s *OrderService) FindAll(ctx context.Context, params OrderListParams) ([]models.Order, int64, error) {
	orders, total, err := s.store.Orders().FindAll(ctx, repository.OrderFilter{
		Page:   pageOf(params.PaginationParams),
		Search: params.Search,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// Update applies a patch. Amount rules are checked against the merged view
// of stored and patched values. Moving the order to another team
// recalculates both the team it left and the team it joined.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req *UpdateOrderRequest) (*models.Order, error) {
	if req.CustomerName != nil && strings.TrimSpace(*req.CustomerName) == "" {
		return nil, validationError("customer name is required and cannot be empty")
	}
	if req.TotalPrice != nil && req.TotalPrice.IsNegative() {
		return nil, validationError("total price cannot be negative")
	}
	if req.Deposit != nil && req.Deposit.IsNegative() {
		return nil, validationError("deposit cannot be negative")
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, validationError(fmt.Sprintf("invalid order status %q", *req.Status))
	}

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case req.TotalPrice != nil && req.Deposit != nil:
		if req.Deposit.GreaterThan(*req.TotalPrice) {
			return nil, validationError("deposit cannot be greater than total price")
		}
	case req.Deposit != nil:
		if req.Deposit.GreaterThan(existing.TotalPrice) {
			return nil, validationError("deposit cannot be greater than total price")
		}
	case req.TotalPrice != nil:
		if existing.Deposit.GreaterThan(*req.TotalPrice) {
			return nil, validationError("total price cannot be less than deposit")
		}
	}

	updated := *existing
	updated.OrderItems, updated.Team, updated.Classroom = nil, nil, nil
	applyOrderPatch(&updated, req)

	if updated.BookNumber != existing.BookNumber || updated.Number != existing.Number {
		if err := s.ensureBookNumberFree(ctx, updated.BookNumber, updated.Number, id); err != nil {
			return nil, err
		}
	}

	if err := s.store.Orders().Update(ctx, &updated); err != nil {
		return nil, storageError(err, "order", duplicateBookNumberMessage)
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"order_id":    id,
		"old_team_id": existing.TeamID,
		"new_team_id": updated.TeamID,
	}).Info("Order updated")

	result, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.teamSales.RecalculateTeams(ctx, existing.TeamID, result.TeamID); err != nil {
		return result, err
	}
	return result, nil
}

func applyOrderPatch(order *models.Order, req *UpdateOrderRequest) {
	if req.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.ClassroomID.Set {
		order.ClassroomID = req.ClassroomID.Value
	}
	if req.TeamID.Set {
		order.TeamID = req.TeamID.Value
	}
	if req.OrderDate != nil {
		order.OrderDate = req.OrderDate
	}
	if req.TotalPrice != nil {
		order.TotalPrice = *req.TotalPrice
	}
	if req.BookNumber != nil {
		order.BookNumber = *req.BookNumber
	}
	if req.Number != nil {
		order.Number = *req.Number
	}
	if req.Phone != nil {
		order.Phone = *req.Phone
	}
	if req.PickupDate != nil {
		order.PickupDate = req.PickupDate
	}
	if req.Depository != nil {
		order.Depository = *req.Depository
	}
	if req.Deposit != nil {
		order.Deposit = *req.Deposit
	}
	if req.Advisor != nil {
		order.Advisor = *req.Advisor
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
}

// Remove deletes the order and its items in one transaction, then
// recalculates the team the order belonged to.
func (s *OrderService) Remove(ctx context.Context, id uuid.UUID) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	teamID := existing.TeamID

	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := tx.OrderItems().DeleteByOrder(ctx, id); err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Orders().Delete(ctx, id); err != nil {
			return storageError(err, "order", "")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"order_id": id,
		"team_id":  teamID,
		"items":    len(existing.OrderItems),
	}).Info("Order deleted")

	return s.teamSales.RecalculateTeams(ctx, teamID)
}

func pageOf(params utils.PaginationParams) repository.Page {
	if params.Limit <= 0 {
		return repository.Page{}
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	return repository.Page{Offset: (page - 1) * params.Limit, Limit: params.Limit}
}
