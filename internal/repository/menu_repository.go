package repository

import (
	"context"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"

	"gorm.io/gorm"
)

// MenuRepository 菜单持久化
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) Create(ctx context.Context, menu *model.Menu) error {
	return translate(r.db.WithContext(ctx).Create(menu).Error, "菜单")
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*model.Menu, error) {
	var menu model.Menu
	if err := r.db.WithContext(ctx).First(&menu, id).Error; err != nil {
		return nil, translate(err, "菜单")
	}
	return &menu, nil
}

// FindMenusByRestaurant 查询餐厅下的菜单
func (r *MenuRepository) FindMenusByRestaurant(ctx context.Context, restaurantID uint) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&menus).Error
	if err != nil {
		return nil, translate(err, "菜单")
	}
	return menus, nil
}

// UpdateStatus 修改发布状态
func (r *MenuRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !model.IsValidMenuStatus(status) {
		return apperr.Validation("无效的菜单状态: " + status)
	}
	res := r.db.WithContext(ctx).Model(&model.Menu{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "菜单")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "菜单")
	}
	return nil
}
