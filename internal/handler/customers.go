package handler

import (
	"errors"
	"net/http"

	"github.com/kartavya2004/retail-billing/internal/models"
	"github.com/kartavya2004/retail-billing/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomersHandler struct {
	DB *gorm.DB
}

func (h *CustomersHandler) List(c *gin.Context) {
	var customers []models.Customer
	if err := h.DB.Where("enterprise_id = ?", enterpriseID(c)).
		Order("created_at DESC").Find(&customers).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": customers})
}

func (h *CustomersHandler) GetByPhone(c *gin.Context) {
	phone := utils.NormalizePhone(c.Param("phoneNumber"))

	var customer models.Customer
	err := h.DB.Where("enterprise_id = ? AND phone_number = ?", enterpriseID(c), phone).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Customer not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}

type CustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// Create follows find-or-create semantics: an already-registered phone
// number returns the stored record untouched.
func (h *CustomersHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and phone number are required"})
		return
	}

	phone := utils.NormalizePhone(req.PhoneNumber)

	var existing models.Customer
	err := h.DB.Where("enterprise_id = ? AND phone_number = ?", enterpriseID(c), phone).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Customer already exists",
			"data":    existing,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err)
		return
	}

	customer := models.Customer{
		EnterpriseID: enterpriseID(c),
		Name:         req.Name,
		PhoneNumber:  phone,
	}
	if err := h.DB.Create(&customer).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Customer created successfully",
		"data":    customer,
	})
}

func (h *CustomersHandler) Update(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and phone number are required"})
		return
	}

	var customer models.Customer
	err := h.DB.Where("id = ? AND enterprise_id = ?", c.Param("id"), enterpriseID(c)).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Customer not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	customer.Name = req.Name
	customer.PhoneNumber = utils.NormalizePhone(req.PhoneNumber)
	if err := h.DB.Save(&customer).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer updated successfully",
		"data":    customer,
	})
}
