package repository

import (
	"context"
	"scanmenu-platform/internal/model"
	"time"

	"gorm.io/gorm"
)

// SubscriptionRepository 订阅持久化
type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create 插入订阅；用户已有 active 订阅时返回 ErrDuplicateKey
func (r *SubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return translate(r.db.WithContext(ctx).Create(sub).Error, "订阅")
}

// Activate 在同一事务中取消用户现有的 active 订阅并写入新订阅
func (r *SubscriptionRepository) Activate(ctx context.Context, sub *model.Subscription) error {
	sub.Status = model.SubscriptionActive
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Subscription{}).
			Where("user_id = ? AND status = ?", sub.UserID, model.SubscriptionActive).
			Updates(map[string]interface{}{
				"status":         model.SubscriptionCanceled,
				"active_user_id": nil,
			}).Error
		if err != nil {
			return err
		}
		return tx.Create(sub).Error
	})
	return translate(err, "订阅")
}

// FindCurrentByUser 查询用户当前有效（active 且未过期）的订阅
func (r *SubscriptionRepository) FindCurrentByUser(ctx context.Context, userID uint, now time.Time) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND current_period_end > ?", userID, model.SubscriptionActive, now.UTC()).
		First(&sub).Error
	if err != nil {
		return nil, translate(err, "订阅")
	}
	return &sub, nil
}
