package repository

import (
	"context"
	"scanmenu-platform/internal/model"

	"gorm.io/gorm"
)

// UsageRepository 统计用户已占用的套餐额度
type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// CountRestaurants 启用中的餐厅数
func (r *UsageRepository) CountRestaurants(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Count(&n).Error
	return n, translate(err, "餐厅")
}

// CountMenus 未归档的菜单数
func (r *UsageRepository) CountMenus(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Menu{}).
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id").
		Where("restaurants.owner_id = ? AND menus.status <> ?", ownerID, model.MenuStatusArchived).
		Count(&n).Error
	return n, translate(err, "菜单")
}

// CountLinks 启用中的链接数，停用的链接不占额度
func (r *UsageRepository) CountLinks(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.MenuLink{}).
		Joins("JOIN menus ON menus.id = menu_links.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id").
		Where("restaurants.owner_id = ? AND menu_links.is_active = ?", ownerID, true).
		Count(&n).Error
	return n, translate(err, "链接")
}
