package model

import (
	"time"
)

// 二维码边框样式
const (
	FrameNone    = "none"
	FrameRounded = "rounded"
	FrameSquare  = "square"
)

// 样式默认值
const (
	DefaultQRCodeColor     = "#000000"
	DefaultBackgroundColor = "#ffffff"
	DefaultFrameStyle      = FrameRounded
)

// StyleConfig 二维码样式
type StyleConfig struct {
	QRCodeColor     string `gorm:"size:7;not null;default:'#000000'" json:"qr_code_color" validate:"hexcolor6"`
	QRCodeLogo      string `gorm:"size:512" json:"qr_code_logo,omitempty" validate:"max=512"` // 对象存储 key
	FrameStyle      string `gorm:"size:16;not null;default:'rounded'" json:"frame_style" validate:"oneof=none rounded square"`
	BackgroundColor string `gorm:"size:7;not null;default:'#ffffff'" json:"background_color" validate:"hexcolor6"`
}

// TrackingMeta UTM 及桌号等追踪信息
type TrackingMeta struct {
	Source   string `gorm:"size:50" json:"source,omitempty" validate:"max=50"`
	Medium   string `gorm:"size:50" json:"medium,omitempty" validate:"max=50"`
	Campaign string `gorm:"size:100" json:"campaign,omitempty" validate:"max=100"`
	Table    string `gorm:"size:20" json:"table,omitempty" validate:"max=20"`
	Location string `gorm:"size:100" json:"location,omitempty" validate:"max=100"`
}

// MenuLink 菜单分享链接
type MenuLink struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	MenuID    uint         `gorm:"not null;index;index:idx_menu_links_menu_active,priority:1" json:"menu_id"`
	Slug      string       `gorm:"size:32;uniqueIndex;not null" json:"slug"`
	Name      string       `gorm:"size:100" json:"name,omitempty" validate:"max=100"`
	Style     StyleConfig  `gorm:"embedded;embeddedPrefix:style_" json:"style_config"`
	Tracking  TrackingMeta `gorm:"embedded;embeddedPrefix:tracking_" json:"tracking_meta"`
	IsActive  bool         `gorm:"default:true;index:idx_menu_links_menu_active,priority:2" json:"is_active"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName 指定表名
func (MenuLink) TableName() string {
	return "menu_links"
}
