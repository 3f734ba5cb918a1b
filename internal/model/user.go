package model

import (
	"time"

	"gorm.io/gorm"
)

// User 餐厅老板账号（通过 OAuth 登录）
type User struct {
	gorm.Model
	Email      string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name       string     `gorm:"type:varchar(100)" json:"name"`
	Image      string     `gorm:"type:varchar(512)" json:"image,omitempty"`
	Provider   string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_users_provider_account" json:"provider"`
	ProviderID string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_provider_account" json:"-"`
	Role       string     `gorm:"type:varchar(20);default:'owner'" json:"role"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}
