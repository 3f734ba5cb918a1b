package model

import (
	"time"
)

// 菜单状态
const (
	MenuStatusDraft     = "draft"
	MenuStatusPublished = "published"
	MenuStatusArchived  = "archived"
)

// Menu PDF 菜单
type Menu struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	RestaurantID uint      `gorm:"not null;index;index:idx_menus_restaurant_status,priority:1" json:"restaurant_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"size:500" json:"description,omitempty"`
	PDFKey       string    `gorm:"column:pdf_key;size:512;not null;index" json:"pdf_key"`
	Status       string    `gorm:"size:16;not null;default:'draft';index:idx_menus_restaurant_status,priority:2" json:"status"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Menu) TableName() string {
	return "menus"
}

// IsValidMenuStatus 校验菜单状态
func IsValidMenuStatus(status string) bool {
	switch status {
	case MenuStatusDraft, MenuStatusPublished, MenuStatusArchived:
		return true
	}
	return false
}

// All 返回需要自动迁移的全部模型
func All() []interface{} {
	return []interface{}{&User{}, &Restaurant{}, &Menu{}, &MenuLink{}, &Visit{}, &Plan{}, &Subscription{}}
}
