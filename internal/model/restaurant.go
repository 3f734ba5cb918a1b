package model

import (
	"time"
)

// Restaurant 餐厅
type Restaurant struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	OwnerID        uint      `gorm:"not null;index;index:idx_restaurants_owner_active,priority:1" json:"owner_id"`
	NameEn         string    `gorm:"size:100;not null" json:"name_en"`
	NameAr         string    `gorm:"size:100;not null" json:"name_ar"`
	Slug           string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	DescriptionEn  string    `gorm:"size:500" json:"description_en,omitempty"`
	DescriptionAr  string    `gorm:"size:500" json:"description_ar,omitempty"`
	LogoKey        string    `gorm:"size:512" json:"logo_key,omitempty"`
	PrimaryColor   string    `gorm:"size:7" json:"primary_color,omitempty"`
	SecondaryColor string    `gorm:"size:7" json:"secondary_color,omitempty"`
	IsActive       bool      `gorm:"default:true;index:idx_restaurants_owner_active,priority:2" json:"is_active"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
