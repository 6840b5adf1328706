// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	BaseModel
	CustomerName string          `json:"customer_name" gorm:"size:255;not null"`
	ClassroomID  *uuid.UUID      `json:"classroom_id" gorm:"type:uuid;index"`
	TeamID       *uuid.UUID      `json:"team_id" gorm:"type:uuid;index"`
	OrderDate    *time.Time      `json:"order_date"`
	TotalPrice   decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null;default:0"`
	BookNumber   int             `json:"book_number" gorm:"not null;uniqueIndex:idx_orders_book_number_number"`
	Number       int             `json:"number" gorm:"not null;uniqueIndex:idx_orders_book_number_number"`
	Phone        string          `json:"phone" gorm:"size:50"`
	PickupDate   *time.Time      `json:"pickup_date"`
	Depository   string          `json:"depository,omitempty" gorm:"size:255"`
	Deposit      decimal.Decimal `json:"deposit" gorm:"type:decimal(12,2);not null;default:0"`
	Advisor      string          `json:"advisor" gorm:"size:255"`
	Status       OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	// Relationships
	Classroom  *Classroom  `json:"classroom,omitempty" gorm:"foreignKey:ClassroomID;constraint:OnDelete:SET NULL"`
	Team       *Team       `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	OrderItems []OrderItem `json:"order_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one line of an order. Subtotal is derived from the product
// price at the time the item was last written.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	Pound     decimal.Decimal `json:"pound" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(14,2);not null;default:0"`

	// Relationships
	Order   *Order   `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}
