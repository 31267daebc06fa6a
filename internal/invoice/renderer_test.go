package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/kartavya2004/retail-billing/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	invID := uint(3)
	return Document{
		Bill: models.Bill{
			ID:       42,
			BillDate: time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC),
			Items: models.BillLineItems{
				{InventoryID: &invID, ItemName: "Soap", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
				{ItemName: "Gift wrapping", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
			},
			SubTotal:          decimal.NewFromInt(230),
			DiscountBeforeTax: decimal.NewFromInt(30),
			TaxableAmount:     decimal.NewFromInt(200),
			CGST:              decimal.NewFromInt(18),
			SGST:              decimal.NewFromInt(18),
			TotalAmount:       decimal.NewFromInt(236),
			PaymentMethod:     models.PaymentMethodUPI,
		},
		Customer: models.Customer{
			Name:        "Asha",
			PhoneNumber: "+919876543210",
		},
		Enterprise: models.Enterprise{
			EnterpriseName: "Sharma General Stores",
			Address:        "12 MG Road, Pune",
			GSTNumber:      "27ABCDE1234F1Z5",
		},
	}
}

func TestPDFRenderer_ProducesPDF(t *testing.T) {
	r := NewPDFRenderer()

	out, err := r.Render(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFRenderer_CancelledContext(t *testing.T) {
	r := NewPDFRenderer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, sampleDocument())
	var re *RenderError
	require.ErrorAs(t, err, &re)
}
