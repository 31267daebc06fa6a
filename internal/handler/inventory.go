package handler

import (
	"errors"
	"net/http"

	"github.com/kartavya2004/retail-billing/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryHandler struct {
	DB *gorm.DB
}

func (h *InventoryHandler) List(c *gin.Context) {
	var items []models.InventoryItem
	if err := h.DB.Where("enterprise_id = ?", enterpriseID(c)).
		Order("item_name ASC").Find(&items).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func (h *InventoryHandler) Get(c *gin.Context) {
	var item models.InventoryItem
	err := h.DB.Where("id = ? AND enterprise_id = ?", c.Param("id"), enterpriseID(c)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Inventory item not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// Pointer fields so a legitimate zero value still binds.
type CreateItemRequest struct {
	ItemName    string           `json:"item_name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Quantity    *int             `json:"quantity" binding:"required"`
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Item name, price, and quantity are required"})
		return
	}
	if req.Price.IsNegative() || *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price and quantity must not be negative"})
		return
	}

	var item models.InventoryItem
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		item = models.InventoryItem{
			EnterpriseID: enterpriseID(c),
			ItemName:     req.ItemName,
			Description:  req.Description,
			Price:        req.Price.Round(2),
			Quantity:     *req.Quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		// Sequential item code derived from the assigned id, so
		// concurrent creates can never race to the same code.
		item.ItemCode = models.ItemCodeFor(item.ID)
		return tx.Model(&item).Update("item_code", item.ItemCode).Error
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Inventory item created successfully",
		"data":    item,
	})
}

type UpdateItemRequest struct {
	ItemName    string           `json:"item_name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Quantity    *int             `json:"quantity" binding:"required"`
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Item name, price, and quantity are required"})
		return
	}
	if req.Price.IsNegative() || *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Price and quantity must not be negative"})
		return
	}

	var item models.InventoryItem
	err := h.DB.Where("id = ? AND enterprise_id = ?", c.Param("id"), enterpriseID(c)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Inventory item not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	item.ItemName = req.ItemName
	item.Description = req.Description
	item.Price = req.Price.Round(2)
	item.Quantity = *req.Quantity
	if err := h.DB.Save(&item).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inventory item updated successfully",
		"data":    item,
	})
}

type AdjustQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AdjustQuantity sets the on-hand quantity directly; it is not a delta.
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity is required"})
		return
	}
	if *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must not be negative"})
		return
	}

	var item models.InventoryItem
	err := h.DB.Where("id = ? AND enterprise_id = ?", c.Param("id"), enterpriseID(c)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Inventory item not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if err := h.DB.Model(&item).Update("quantity", *req.Quantity).Error; err != nil {
		internalError(c, err)
		return
	}
	item.Quantity = *req.Quantity

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inventory quantity updated successfully",
		"data":    item,
	})
}

// Delete removes a catalog item. Historical bills keep their own line
// snapshots, so no cascade check is needed.
func (h *InventoryHandler) Delete(c *gin.Context) {
	res := h.DB.Where("id = ? AND enterprise_id = ?", c.Param("id"), enterpriseID(c)).
		Delete(&models.InventoryItem{})
	if res.Error != nil {
		internalError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Inventory item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Inventory item deleted successfully"})
}
