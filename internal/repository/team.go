// internal/repository/team.go
package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/school-sales-backend/internal/models"
)

type teamRepository struct {
	db *gorm.DB
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) LockByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindAll(ctx context.Context, filter TeamFilter) ([]models.Team, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Team{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []models.Team
	err := query.Scopes(paginate(filter.Page)).Order("name ASC").Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	result := r.db.WithContext(ctx).Model(&models.Team{}).
		Where("id = ?", team.ID).
		Select("name", "classroom_ids", "team_type", "updated_at").
		Updates(team)
	return requireAffected(result)
}

func (r *teamRepository) UpdateSales(ctx context.Context, id uuid.UUID, pounds, baht decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.Team{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_sales_pounds": pounds,
			"total_sales_baht":   baht,
		})
	return requireAffected(result)
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.Team{}, "id = ?", id))
}

func (r *teamRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Team{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}
