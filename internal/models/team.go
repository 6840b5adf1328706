// internal/models/team.go
package models

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Team groups classrooms for sales tracking. TotalSalesPounds and
// TotalSalesBaht are denormalized and only ever written by the team sales
// recalculation.
type Team struct {
	BaseModel
	Name             string          `json:"name" gorm:"size:255;not null;uniqueIndex"`
	ClassroomIDs     pq.StringArray  `json:"classroom_ids" gorm:"type:text[];not null"`
	TeamType         TeamType        `json:"team_type" gorm:"type:varchar(20);not null;default:'team'"`
	TotalSalesPounds decimal.Decimal `json:"total_sales_pounds" gorm:"type:decimal(14,2);not null;default:0"`
	TotalSalesBaht   decimal.Decimal `json:"total_sales_baht" gorm:"type:decimal(14,2);not null;default:0"`
}
