package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/kartavya2004/retail-billing/config"
	"github.com/kartavya2004/retail-billing/internal/models"
	"github.com/kartavya2004/retail-billing/internal/otp"
	"github.com/kartavya2004/retail-billing/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB     *gorm.DB
	Sender otp.Sender
}

type RegisterRequest struct {
	EnterpriseName string `json:"enterprise_name" binding:"required"`
	OwnerName      string `json:"owner_name" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	Email          string `json:"email"`
	Address        string `json:"address" binding:"required"`
	GSTNumber      string `json:"gst_number"`
	Password       string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	phone := utils.NormalizePhone(req.PhoneNumber)

	var existing models.Enterprise
	err := h.DB.Where("phone_number = ?", phone).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number already registered"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		internalError(c, err)
		return
	}

	code, expiresAt := h.newOTP()
	enterprise := models.Enterprise{
		EnterpriseName: req.EnterpriseName,
		OwnerName:      req.OwnerName,
		PhoneNumber:    phone,
		Email:          req.Email,
		Address:        req.Address,
		GSTNumber:      req.GSTNumber,
		PasswordHash:   hashed,
		OTP:            code,
		OTPExpiresAt:   &expiresAt,
	}

	if err := h.DB.Create(&enterprise).Error; err != nil {
		internalError(c, err)
		return
	}

	h.sendOTP(phone, code)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Enterprise registered successfully. Please verify your phone number.",
		"requiresOTP": true,
	})
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide phone number and OTP"})
		return
	}

	phone := utils.NormalizePhone(req.PhoneNumber)

	var enterprise models.Enterprise
	err := h.DB.Where("phone_number = ? AND otp = ? AND otp_expires_at > ?", phone, req.OTP, time.Now()).
		First(&enterprise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired OTP"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	updates := map[string]interface{}{"is_verified": true, "otp": "", "otp_expires_at": nil}
	if err := h.DB.Model(&enterprise).Updates(updates).Error; err != nil {
		internalError(c, err)
		return
	}

	token, err := utils.GenerateToken(enterprise.ID, enterprise.PhoneNumber)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Phone number verified successfully",
		"token":      token,
		"enterprise": enterprise.Profile(),
	})
}

type ResendOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide phone number"})
		return
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	code, expiresAt := h.newOTP()

	res := h.DB.Model(&models.Enterprise{}).
		Where("phone_number = ?", phone).
		Updates(map[string]interface{}{"otp": code, "otp_expires_at": expiresAt})
	if res.Error != nil {
		internalError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Phone number not found"})
		return
	}

	h.sendOTP(phone, code)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP resent successfully"})
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide phone number and password"})
		return
	}

	phone := utils.NormalizePhone(req.PhoneNumber)

	var enterprise models.Enterprise
	err := h.DB.Where("phone_number = ?", phone).First(&enterprise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	// Unverified accounts cannot log in until OTP confirmation succeeds.
	if !enterprise.IsVerified {
		code, expiresAt := h.newOTP()
		if err := h.DB.Model(&enterprise).
			Updates(map[string]interface{}{"otp": code, "otp_expires_at": expiresAt}).Error; err != nil {
			internalError(c, err)
			return
		}
		h.sendOTP(phone, code)
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Please verify your phone number",
			"requiresOTP": true,
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, enterprise.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(enterprise.ID, enterprise.PhoneNumber)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Logged in successfully",
		"token":      token,
		"enterprise": enterprise.Profile(),
	})
}

func (h *AuthHandler) newOTP() (string, time.Time) {
	expiry := time.Duration(config.AppConfig.Server.OTPExpiryMinutes) * time.Minute
	return otp.Generate(), time.Now().Add(expiry)
}

func (h *AuthHandler) sendOTP(phone, code string) {
	if err := h.Sender.Send(phone, code); err != nil {
		logrus.WithError(err).WithField("phone_number", phone).Error("failed to send OTP")
	}
}
