package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields serialize as JSON numbers, matching the public API.
	decimal.MarshalJSONWithoutQuotes = true
}

// Payment methods accepted at bill creation.
const (
	PaymentMethodCash = "Cash"
	PaymentMethodUPI  = "UPI"
	PaymentMethodCard = "Card"
)

// BillLineItem is one line of a bill. InventoryID is nil for manually
// entered lines that never touch the catalog.
type BillLineItem struct {
	InventoryID *uint           `json:"inventory_id,omitempty"`
	ItemName    string          `json:"item_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// BillLineItems is persisted as a JSON snapshot inside the bill row, so
// historical bills stay intact when catalog items are edited or deleted.
type BillLineItems []BillLineItem

func (b BillLineItems) Value() (driver.Value, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (b *BillLineItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("cannot scan %T into BillLineItems", value)
	}
}

// Bill is immutable once created. All monetary columns are two-place
// decimals; Items is the line snapshot taken at creation time.
type Bill struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	EnterpriseID      uint            `gorm:"index;not null" json:"enterprise_id"`
	CustomerID        uint            `gorm:"index;not null" json:"customer_id"`
	Customer          *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	BillDate          time.Time       `gorm:"not null" json:"bill_date"`
	Items             BillLineItems   `gorm:"type:text;not null" json:"items"`
	SubTotal          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sub_total"`
	DiscountBeforeTax decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount_before_tax"`
	TaxableAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"taxable_amount"`
	CGST              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cgst"`
	SGST              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sgst"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod     string          `gorm:"size:10;not null" json:"payment_method"`
}
