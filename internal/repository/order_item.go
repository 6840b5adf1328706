// internal/repository/order_item.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/school-sales-backend/internal/models"
)

type orderItemRepository struct {
	db *gorm.DB
}

func (r *orderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *orderItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Order").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) FindAll(ctx context.Context, filter OrderItemFilter) ([]models.OrderItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderItem{})
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.OrderItem
	err := query.Preload("Product").Preload("Order").
		Scopes(paginate(filter.Page)).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *orderItemRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Order").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *orderItemRepository) Update(ctx context.Context, item *models.OrderItem) error {
	result := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("id = ?", item.ID).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(item)
	return requireAffected(result)
}

func (r *orderItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", id))
}

func (r *orderItemRepository) DeleteByOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error
}
