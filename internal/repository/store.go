// internal/repository/store.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/javajoker/school-sales-backend/internal/database"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Orders() OrderRepository {
	return &orderRepository{db: s.db}
}

func (s *gormStore) OrderItems() OrderItemRepository {
	return &orderItemRepository{db: s.db}
}

func (s *gormStore) Teams() TeamRepository {
	return &teamRepository{db: s.db}
}

func (s *gormStore) Products() ProductRepository {
	return &productRepository{db: s.db}
}

func (s *gormStore) Classrooms() ClassroomRepository {
	return &classroomRepository{db: s.db}
}

func (s *gormStore) WithinTransaction(ctx context.Context, fn func(Store) error) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func paginate(page Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Limit <= 0 {
			return db
		}
		return db.Offset(page.Offset).Limit(page.Limit)
	}
}

// requireAffected turns a write that touched no rows into gorm.ErrRecordNotFound.
func requireAffected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
