// internal/repository/order.go
package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/school-sales-backend/internal/models"
)

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").Preload("Team").Preload("Classroom").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(advisor) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Preload("OrderItems").Preload("Team").Preload("Classroom").
		Scopes(paginate(filter.Page)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", order.ID).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(order)
	return requireAffected(result)
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id))
}

func (r *orderRepository) FindByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("team_id = ?", teamID).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindByBookNumberAndNumber(ctx context.Context, bookNumber, number int) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("book_number = ? AND number = ?", bookNumber, number).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
