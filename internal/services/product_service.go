// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

const duplicateProductMessage = "product name already exists"

// ProductService manages the catalog. Changing a price affects items written
// afterwards; stored subtotals keep the price they were computed with.
type ProductService struct {
	store repository.Store
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
}

type ProductListParams struct {
	utils.PaginationParams
}

func NewProductService(store repository.Store) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("product name is required")
	}
	if req.Price.IsNegative() {
		return nil, validationError("price cannot be negative")
	}

	product := &models.Product{
		Name:        name,
		Price:       req.Price,
		Description: req.Description,
	}
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, storageError(err, "product", duplicateProductMessage)
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"product_id": product.ID,
		"price":      product.Price.String(),
	}).Info("Product created")
	return product, nil
}

func (s *ProductService) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "product", "")
	}
	return product, nil
}

func (s *ProductService) FindAll(ctx context.Context, params ProductListParams) ([]models.Product, int64, error) {
	products, total, err := s.store.Products().FindAll(ctx, repository.ProductFilter{
		Page:   pageOf(params.PaginationParams),
		Search: params.Search,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("product name is required")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, validationError("price cannot be negative")
	}

	product, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, storageError(err, "product", duplicateProductMessage)
	}
	return s.FindByID(ctx, id)
}

// Delete removes a product that no order item refers to.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Products().Delete(ctx, id)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return conflictError("product is used by order items")
	}
	if err != nil {
		return storageError(err, "product", "")
	}

	logrus.WithContext(ctx).WithField("product_id", id).Info("Product deleted")
	return nil
}
