package billing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kartavya2004/retail-billing/internal/models"

	"github.com/shopspring/decimal"
)

// BuildWhatsAppURL renders a bill into the pre-filled WhatsApp message
// text and percent-encodes it into a share link.
func BuildWhatsAppURL(bill models.Bill, customer models.Customer) string {
	var b strings.Builder

	b.WriteString("*Bill from ERP System*\n\n")
	fmt.Fprintf(&b, "Date: %s\n", bill.BillDate.Format("02/01/2006, 15:04:05"))
	fmt.Fprintf(&b, "Bill No: %d\n", bill.ID)
	fmt.Fprintf(&b, "Customer: %s\n", customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n\n", customer.PhoneNumber)

	b.WriteString("*Items:*\n")
	for i, item := range bill.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.ItemName)
		fmt.Fprintf(&b, "   Qty: %d × ₹%s = ₹%s\n", item.Quantity, item.UnitPrice.StringFixed(2), lineTotal.StringFixed(2))
	}

	b.WriteString("\n*Bill Summary:*\n")
	fmt.Fprintf(&b, "Sub Total: ₹%s\n", bill.SubTotal.StringFixed(2))
	if bill.DiscountBeforeTax.IsPositive() {
		fmt.Fprintf(&b, "Discount: ₹%s\n", bill.DiscountBeforeTax.StringFixed(2))
	}
	fmt.Fprintf(&b, "Taxable Amount: ₹%s\n", bill.TaxableAmount.StringFixed(2))
	fmt.Fprintf(&b, "CGST (9%%): ₹%s\n", bill.CGST.StringFixed(2))
	fmt.Fprintf(&b, "SGST (9%%): ₹%s\n", bill.SGST.StringFixed(2))
	fmt.Fprintf(&b, "Total Amount: ₹%s\n\n", bill.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Payment Method: %s\n", bill.PaymentMethod)

	params := url.Values{"text": {b.String()}}
	return "https://api.whatsapp.com/send?" + params.Encode()
}
