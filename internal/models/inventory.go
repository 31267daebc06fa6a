package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EnterpriseID uint            `gorm:"index;not null" json:"enterprise_id"`
	ItemCode     string          `gorm:"size:20;unique;not null" json:"item_code"`
	ItemName     string          `gorm:"size:150;not null" json:"item_name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity"`
}

// ItemCodeFor derives the sequential catalog code from a numeric id.
func ItemCodeFor(id uint) string {
	return fmt.Sprintf("INV%04d", id)
}
