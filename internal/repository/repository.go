// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/javajoker/school-sales-backend/internal/models"
)

// Implementations report a missing row as gorm.ErrRecordNotFound, a unique
// violation as gorm.ErrDuplicatedKey and a dangling reference as
// gorm.ErrForeignKeyViolated.

// Page is an offset window over a list query.
type Page struct {
	Offset int
	Limit  int
}

type OrderFilter struct {
	Page
	// Search matches customer name or advisor, case-insensitively.
	Search string
}

type OrderItemFilter struct {
	Page
	OrderID *uuid.UUID
}

type TeamFilter struct {
	Page
	Search string
}

type ProductFilter struct {
	Page
	Search string
}

type ClassroomFilter struct {
	Page
	Search       string
	DepartmentID *uuid.UUID
}

// OrderRepository handles persistence for Orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// FindByID loads the order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	// Update writes every column of order except its id and associations.
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByTeamID loads every order of the team with its items.
	FindByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Order, error)
	FindByBookNumberAndNumber(ctx context.Context, bookNumber, number int) (*models.Order, error)
}

// OrderItemRepository handles persistence for OrderItems.
type OrderItemRepository interface {
	Create(ctx context.Context, item *models.OrderItem) error
	// FindByID loads the item with its product and order.
	FindByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	FindAll(ctx context.Context, filter OrderItemFilter) ([]models.OrderItem, int64, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	Update(ctx context.Context, item *models.OrderItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOrder(ctx context.Context, orderID uuid.UUID) error
}

// TeamRepository handles persistence for Teams.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	// LockByID loads the team and holds a row lock until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	FindAll(ctx context.Context, filter TeamFilter) ([]models.Team, int64, error)
	// Update writes the descriptive columns only; sales totals are untouched.
	Update(ctx context.Context, team *models.Team) error
	UpdateSales(ctx context.Context, id uuid.UUID, pounds, baht decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// ProductRepository handles persistence for Products.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClassroomRepository handles persistence for Classrooms.
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error)
	FindAll(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, int64, error)
	Update(ctx context.Context, classroom *models.Classroom) error
	// Delete removes the classroom; its orders lose their classroom reference.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store bundles the repositories that share one database handle.
type Store interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Teams() TeamRepository
	Products() ProductRepository
	Classrooms() ClassroomRepository
	// WithinTransaction runs fn against a Store bound to a single transaction,
	// committing when fn returns nil and rolling back otherwise.
	WithinTransaction(ctx context.Context, fn func(Store) error) error
}
