package model

import (
	"time"
)

// 内置套餐
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// PlanLimits 套餐额度，Visits 为每月访问量，StorageMB 为存储空间
type PlanLimits struct {
	Restaurants int `gorm:"not null" json:"restaurants"`
	Menus       int `gorm:"not null" json:"menus"`
	Links       int `gorm:"not null" json:"links"`
	Visits      int `gorm:"not null" json:"visits"`
	StorageMB   int `gorm:"column:storage_mb;not null" json:"storage_mb"`
}

// Plan 订阅套餐，价格以分为单位
type Plan struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"size:50;not null" json:"name"`
	Slug      string     `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Price     int64      `gorm:"not null;index:idx_plans_active_price,priority:2" json:"price"`
	Currency  string     `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Features  []string   `gorm:"serializer:json;type:text" json:"features"`
	Limits    PlanLimits `gorm:"embedded;embeddedPrefix:limit_" json:"limits"`
	IsActive  bool       `gorm:"default:true;index:idx_plans_active_price,priority:1" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// DefaultPlans 启动时写入的内置套餐，第一个为免费套餐
func DefaultPlans() []Plan {
	return []Plan{
		{
			Name:     "Free",
			Slug:     PlanFree,
			Price:    0,
			Currency: "USD",
			Features: []string{"basic_analytics", "qr_codes", "pdf_upload", "basic_customization"},
			Limits:   PlanLimits{Restaurants: 1, Menus: 3, Links: 10, Visits: 1000, StorageMB: 50},
			IsActive: true,
		},
		{
			Name:     "Pro",
			Slug:     PlanPro,
			Price:    1999,
			Currency: "USD",
			Features: []string{
				"advanced_analytics", "custom_qr_codes", "unlimited_pdf_upload", "advanced_customization",
				"custom_branding", "social_links", "utm_tracking",
			},
			Limits:   PlanLimits{Restaurants: 5, Menus: 50, Links: 500, Visits: 50000, StorageMB: 1000},
			IsActive: true,
		},
		{
			Name:     "Enterprise",
			Slug:     PlanEnterprise,
			Price:    4999,
			Currency: "USD",
			Features: []string{
				"enterprise_analytics", "white_label", "api_access", "priority_support",
				"custom_integrations", "advanced_security", "team_management",
			},
			Limits:   PlanLimits{Restaurants: 50, Menus: 1000, Links: 10000, Visits: 1000000, StorageMB: 10000},
			IsActive: true,
		},
	}
}
