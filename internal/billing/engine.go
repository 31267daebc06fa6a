package billing

import (
	"context"
	"errors"
	"time"

	"github.com/kartavya2004/retail-billing/internal/models"
	"github.com/kartavya2004/retail-billing/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Engine runs the bill-creation transaction: customer upsert, catalog
// stock reservation, tax computation and the bill insert execute as one
// atomic unit against the store.
type Engine struct {
	db       *gorm.DB
	validate *validator.Validate
	gstRate  decimal.Decimal
}

func NewEngine(db *gorm.DB, gstRate float64) *Engine {
	return &Engine{
		db:       db,
		validate: validator.New(),
		gstRate:  decimal.NewFromFloat(gstRate),
	}
}

type CustomerInput struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type LineItemInput struct {
	InventoryID *uint           `json:"inventory_id,omitempty"`
	ItemName    string          `json:"item_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateBillRequest struct {
	Customer          *CustomerInput  `json:"customer" validate:"required"`
	Items             []LineItemInput `json:"items" validate:"required,min=1,dive"`
	DiscountBeforeTax decimal.Decimal `json:"discount_before_tax"`
	PaymentMethod     string          `json:"payment_method" validate:"required,oneof=Cash UPI Card"`
}

// Receipt is the engine's output: the persisted bill joined with the
// resolved customer, plus the pre-filled WhatsApp share URL.
type Receipt struct {
	Bill        models.Bill `json:"bill"`
	WhatsAppURL string      `json:"whatsappUrl"`
}

// CreateBill validates the request, then runs steps 2-5 of the billing
// transaction inside one database transaction. Any failure rolls back
// every stock decrement and insert before the error is surfaced.
func (e *Engine) CreateBill(ctx context.Context, enterpriseID uint, req CreateBillRequest) (*Receipt, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}

	phone := utils.NormalizePhone(req.Customer.PhoneNumber)

	var bill models.Bill
	var customer models.Customer

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = findOrCreateCustomer(tx, enterpriseID, req.Customer.Name, phone)
		if err != nil {
			return err
		}

		snapshot := make(models.BillLineItems, 0, len(req.Items))
		for _, line := range req.Items {
			if line.InventoryID != nil {
				if err := e.reserveStock(tx, enterpriseID, *line.InventoryID, line.Quantity); err != nil {
					return err
				}
			}
			snapshot = append(snapshot, models.BillLineItem{
				InventoryID: line.InventoryID,
				ItemName:    line.ItemName,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
			})
		}

		totals := computeTotals(req.Items, req.DiscountBeforeTax, e.gstRate)

		bill = models.Bill{
			EnterpriseID:      enterpriseID,
			CustomerID:        customer.ID,
			BillDate:          time.Now(),
			Items:             snapshot,
			SubTotal:          totals.SubTotal,
			DiscountBeforeTax: req.DiscountBeforeTax.Round(2),
			TaxableAmount:     totals.Taxable,
			CGST:              totals.CGST,
			SGST:              totals.SGST,
			TotalAmount:       totals.Total,
			PaymentMethod:     req.PaymentMethod,
		}
		return tx.Create(&bill).Error
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	bill.Customer = &customer

	logrus.WithFields(logrus.Fields{
		"enterprise_id": enterpriseID,
		"bill_id":       bill.ID,
		"customer_id":   customer.ID,
		"total_amount":  bill.TotalAmount,
	}).Info("bill created")

	return &Receipt{
		Bill:        bill,
		WhatsAppURL: BuildWhatsAppURL(bill, customer),
	}, nil
}

func (e *Engine) validateRequest(req CreateBillRequest) error {
	if err := e.validate.Struct(req); err != nil {
		return NewValidationError("customer details, items, and payment method are required")
	}
	if req.DiscountBeforeTax.IsNegative() {
		return NewValidationError("discount_before_tax must not be negative")
	}
	for _, line := range req.Items {
		if line.UnitPrice.IsNegative() {
			return NewValidationError("unit_price must not be negative for item %s", line.ItemName)
		}
	}
	return nil
}

// reserveStock decrements on-hand stock with a guarded update so two
// concurrent bills can never both pass the stock check for a combined
// quantity exceeding what is on hand.
func (e *Engine) reserveStock(tx *gorm.DB, enterpriseID, inventoryID uint, quantity int) error {
	var item models.InventoryItem
	err := tx.Where("id = ? AND enterprise_id = ?", inventoryID, enterpriseID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &InventoryNotFoundError{InventoryID: inventoryID}
	}
	if err != nil {
		return err
	}

	res := tx.Model(&models.InventoryItem{}).
		Where("id = ? AND enterprise_id = ? AND quantity >= ?", inventoryID, enterpriseID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &InsufficientStockError{ItemName: item.ItemName}
	}
	return nil
}

func findOrCreateCustomer(tx *gorm.DB, enterpriseID uint, name, phone string) (models.Customer, error) {
	var customer models.Customer
	err := tx.Where("enterprise_id = ? AND phone_number = ?", enterpriseID, phone).First(&customer).Error
	if err == nil {
		// Existing record wins; the submitted name is discarded.
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return customer, err
	}

	customer = models.Customer{
		EnterpriseID: enterpriseID,
		Name:         name,
		PhoneNumber:  phone,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return customer, err
	}
	return customer, nil
}

type totals struct {
	SubTotal decimal.Decimal
	Taxable  decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	Total    decimal.Decimal
}

// computeTotals applies the tax formula: taxable = sub_total - discount
// clamped at zero, then CGST and SGST each at the configured rate.
func computeTotals(items []LineItemInput, discount decimal.Decimal, rate decimal.Decimal) totals {
	subTotal := decimal.Zero
	for _, line := range items {
		subTotal = subTotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	subTotal = subTotal.Round(2)

	taxable := subTotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	taxable = taxable.Round(2)

	cgst := taxable.Mul(rate).Round(2)
	sgst := taxable.Mul(rate).Round(2)
	total := taxable.Add(cgst).Add(sgst)

	return totals{
		SubTotal: subTotal,
		Taxable:  taxable,
		CGST:     cgst,
		SGST:     sgst,
		Total:    total,
	}
}

// asEngineError keeps taxonomy errors as-is and wraps anything else as a
// storage failure.
func asEngineError(err error) error {
	var ve *ValidationError
	var nf *InventoryNotFoundError
	var is *InsufficientStockError
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &is) {
		return err
	}
	return &StorageError{Err: err}
}
