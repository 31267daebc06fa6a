package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kartavya2004/retail-billing/config"
	"github.com/kartavya2004/retail-billing/internal/billing"
	"github.com/kartavya2004/retail-billing/internal/invoice"
	"github.com/kartavya2004/retail-billing/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BillsHandler struct {
	DB       *gorm.DB
	Engine   *billing.Engine
	Renderer invoice.Renderer
}

func (h *BillsHandler) List(c *gin.Context) {
	var bills []models.Bill
	if err := h.DB.Preload("Customer").
		Where("enterprise_id = ?", enterpriseID(c)).
		Order("bill_date DESC").Find(&bills).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bills})
}

func (h *BillsHandler) Get(c *gin.Context) {
	var bill models.Bill
	err := h.DB.Preload("Customer").
		Where("id = ? AND enterprise_id = ?", c.Param("id"), enterpriseID(c)).
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bill not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bill})
}

// Create is the billing transaction endpoint. The engine owns atomicity;
// this handler only binds input and maps taxonomy errors to statuses.
func (h *BillsHandler) Create(c *gin.Context) {
	var req billing.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Customer details, items, and payment method are required"})
		return
	}

	receipt, err := h.Engine.CreateBill(c.Request.Context(), enterpriseID(c), req)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Bill created successfully",
		"data": gin.H{
			"bill":        receipt.Bill,
			"whatsappUrl": receipt.WhatsAppURL,
		},
	})
}

// Download renders the persisted bill as a PDF. The render runs outside
// any transaction with a deadline so a slow renderer cannot pin the
// request forever.
func (h *BillsHandler) Download(c *gin.Context) {
	var bill models.Bill
	err := h.DB.Preload("Customer").
		Where("id = ? AND enterprise_id = ?", c.Param("id"), enterpriseID(c)).
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bill not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	var enterprise models.Enterprise
	if err := h.DB.First(&enterprise, enterpriseID(c)).Error; err != nil {
		internalError(c, err)
		return
	}

	timeout := time.Duration(config.AppConfig.Billing.PDFRenderTimeout) * time.Second
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	var customer models.Customer
	if bill.Customer != nil {
		customer = *bill.Customer
	}

	pdfBytes, err := h.Renderer.Render(ctx, invoice.Document{
		Bill:       bill,
		Customer:   customer,
		Enterprise: enterprise,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", bill.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *BillsHandler) writeEngineError(c *gin.Context, err error) {
	var ve *billing.ValidationError
	var nf *billing.InventoryNotFoundError
	var is *billing.InsufficientStockError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ve.Message})
	case errors.As(err, &nf):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": nf.Error()})
	case errors.As(err, &is):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": is.Error()})
	default:
		internalError(c, err)
	}
}
