package repository

import (
	"context"
	"scanmenu-platform/internal/model"

	"gorm.io/gorm"
)

// RestaurantRepository 餐厅持久化
type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// Create 创建餐厅，slug 重复时返回 ErrDuplicateKey
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return translate(r.db.WithContext(ctx).Create(restaurant).Error, "餐厅")
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, translate(err, "餐厅")
	}
	return &restaurant, nil
}

// FindRestaurantsByOwner 查询老板名下的餐厅
func (r *RestaurantRepository) FindRestaurantsByOwner(ctx context.Context, ownerID uint) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		return nil, translate(err, "餐厅")
	}
	return restaurants, nil
}
