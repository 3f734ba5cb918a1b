package model

import (
	"time"

	"gorm.io/gorm"
)

// 订阅状态
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
	SubscriptionTrialing = "trialing"
)

// Subscription 用户订阅，Stripe 字段由支付回调写入
type Subscription struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID uint   `gorm:"not null;index:idx_subscriptions_user_status,priority:1" json:"user_id"`
	PlanID uint   `gorm:"not null;index" json:"plan_id"`
	Status string `gorm:"size:20;not null;index:idx_subscriptions_user_status,priority:2" json:"status"`
	// 仅在 active 状态下等于 UserID，唯一索引保证每个用户最多一个有效订阅
	ActiveUserID         *uint     `gorm:"uniqueIndex" json:"-"`
	CurrentPeriodStart   time.Time `gorm:"not null" json:"current_period_start"`
	CurrentPeriodEnd     time.Time `gorm:"not null;index" json:"current_period_end"`
	CancelAtPeriodEnd    bool      `json:"cancel_at_period_end"`
	StripeSubscriptionID *string   `gorm:"size:255;uniqueIndex" json:"stripe_subscription_id,omitempty"`
	StripeCustomerID     string    `gorm:"size:255;index" json:"stripe_customer_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// BeforeSave 根据状态维护 ActiveUserID
func (s *Subscription) BeforeSave(*gorm.DB) error {
	if s.Status == SubscriptionActive {
		id := s.UserID
		s.ActiveUserID = &id
	} else {
		s.ActiveUserID = nil
	}
	return nil
}

