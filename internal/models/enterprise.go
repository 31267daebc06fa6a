package models

import (
	"time"
)

// Enterprise is the tenant account. Every catalog item, customer and bill
// belongs to exactly one enterprise.
type Enterprise struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	EnterpriseName string     `gorm:"size:150;not null" json:"enterprise_name"`
	OwnerName      string     `gorm:"size:100;not null" json:"owner_name"`
	PhoneNumber    string     `gorm:"size:20;unique;not null" json:"phone_number"`
	Email          string     `gorm:"size:150" json:"email,omitempty"`
	Address        string     `gorm:"type:text;not null" json:"address"`
	GSTNumber      string     `gorm:"size:30" json:"gst_number,omitempty"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	OTP            string     `gorm:"size:10" json:"-"`
	OTPExpiresAt   *time.Time `json:"-"`
	IsVerified     bool       `gorm:"default:false" json:"is_verified"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Profile is the subset of enterprise fields safe to return to clients.
func (e *Enterprise) Profile() map[string]interface{} {
	return map[string]interface{}{
		"id":              e.ID,
		"enterprise_name": e.EnterpriseName,
		"owner_name":      e.OwnerName,
		"phone_number":    e.PhoneNumber,
		"email":           e.Email,
		"address":         e.Address,
		"gst_number":      e.GSTNumber,
	}
}
