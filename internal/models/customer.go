package models

import (
	"time"
)

type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EnterpriseID uint      `gorm:"uniqueIndex:idx_customer_phone;not null" json:"enterprise_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	PhoneNumber  string    `gorm:"size:20;uniqueIndex:idx_customer_phone;not null" json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
}
