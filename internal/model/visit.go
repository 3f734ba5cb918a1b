package model

import (
	"time"
)

// Visit 链接访问记录，只追加不修改
type Visit struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	LinkID    uint      `gorm:"not null;index;index:idx_visits_link_time,priority:1" json:"link_id"`
	Timestamp time.Time `gorm:"column:visited_at;not null;index:idx_visits_link_time,priority:2" json:"timestamp"`
	Day       string    `gorm:"size:10;index" json:"day"` // UTC 日期分桶，便于按天统计
	IPHash    string    `gorm:"size:64;not null;index" json:"ip_hash"`
	UserAgent string    `gorm:"size:500" json:"user_agent,omitempty"`
	Referrer  string    `gorm:"size:500" json:"referrer,omitempty"`
	Source    string    `gorm:"size:50;index" json:"source,omitempty"`
	Table     string    `gorm:"column:table_no;size:20;index" json:"table,omitempty"`
	Country   string    `gorm:"size:2;index" json:"country,omitempty"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Visit) TableName() string {
	return "visits"
}
