package invoice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kartavya2004/retail-billing/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderError wraps any failure while producing the invoice document.
// Callers return a generic failure rather than a partial document.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("invoice render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Document is everything the fixed invoice layout substitutes: the
// persisted bill joined with its customer and the owning enterprise
// profile. The bill's item snapshot must already be deserialized.
type Document struct {
	Bill       models.Bill
	Customer   models.Customer
	Enterprise models.Enterprise
}

// Renderer produces a PDF byte stream for a bill. Rendering runs on a
// read-only path outside any database transaction.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// PDFRenderer is the gofpdf-backed implementation of the fixed layout.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RenderError{Err: err}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice #%d", doc.Bill.ID), false)
	pdf.AddPage()

	// Header: enterprise block
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, doc.Enterprise.EnterpriseName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, doc.Enterprise.Address, "", 1, "C", false, 0, "")
	if doc.Enterprise.GSTNumber != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+doc.Enterprise.GSTNumber, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	// Bill meta
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 7, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, fmt.Sprintf("Bill No: %d", doc.Bill.ID), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+doc.Bill.BillDate.Format("02 Jan 2006 15:04"), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Status: PAID", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Payment: "+doc.Bill.PaymentMethod, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Customer block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Billed To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, doc.Customer.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, doc.Customer.PhoneNumber, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Line-item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(88, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, item := range doc.Bill.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(88, 7, item.ItemName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, "Rs. "+item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, "Rs. "+lineTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Summary block
	summary := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(120, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, "Rs. "+amount, "", 1, "R", false, 0, "")
	}
	summary("Sub Total", doc.Bill.SubTotal.StringFixed(2), false)
	if doc.Bill.DiscountBeforeTax.IsPositive() {
		summary("Discount", doc.Bill.DiscountBeforeTax.StringFixed(2), false)
	}
	summary("Taxable Amount", doc.Bill.TaxableAmount.StringFixed(2), false)
	summary("CGST (9%)", doc.Bill.CGST.StringFixed(2), false)
	summary("SGST (9%)", doc.Bill.SGST.StringFixed(2), false)
	summary("Total", doc.Bill.TotalAmount.StringFixed(2), true)

	if err := ctx.Err(); err != nil {
		return nil, &RenderError{Err: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}
