// internal/repository/classroom.go
package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/school-sales-backend/internal/models"
)

type classroomRepository struct {
	db *gorm.DB
}

func (r *classroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := r.db.WithContext(ctx).First(&classroom, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepository) FindAll(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Classroom{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classrooms []models.Classroom
	err := query.Scopes(paginate(filter.Page)).Order("name ASC").Find(&classrooms).Error
	if err != nil {
		return nil, 0, err
	}

	return classrooms, total, nil
}

func (r *classroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	result := r.db.WithContext(ctx).Model(&models.Classroom{}).
		Where("id = ?", classroom.ID).
		Select("name", "teacher_id", "department_id", "grade_level_id", "students", "updated_at").
		Updates(classroom)
	return requireAffected(result)
}

func (r *classroomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.Classroom{}, "id = ?", id))
}
