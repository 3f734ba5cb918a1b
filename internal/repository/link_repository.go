package repository

import (
	"context"
	"scanmenu-platform/internal/model"

	"gorm.io/gorm"
)

// LinkRepository 菜单链接持久化
type LinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository 创建链接仓储
func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Create 插入新链接；slug 冲突时返回 ErrDuplicateKey 且不写入任何数据
func (r *LinkRepository) Create(ctx context.Context, link *model.MenuLink) error {
	return translate(r.db.WithContext(ctx).Create(link).Error, "链接")
}

// Update 覆盖写入链接的全部可变字段（包括零值）
func (r *LinkRepository) Update(ctx context.Context, link *model.MenuLink) error {
	err := r.db.WithContext(ctx).Model(link).
		Select("*").Omit("id", "created_at").
		Updates(link).Error
	return translate(err, "链接")
}

// SetActive 更新启用状态
func (r *LinkRepository) SetActive(ctx context.Context, id uint, active bool) error {
	err := r.db.WithContext(ctx).Model(&model.MenuLink{}).
		Where("id = ?", id).
		Update("is_active", active).Error
	return translate(err, "链接")
}

// FindByID 按 ID 查询
func (r *LinkRepository) FindByID(ctx context.Context, id uint) (*model.MenuLink, error) {
	var link model.MenuLink
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, translate(err, "链接")
	}
	return &link, nil
}

// FindBySlug 按短码查询（唯一索引）
func (r *LinkRepository) FindBySlug(ctx context.Context, slug string) (*model.MenuLink, error) {
	var link model.MenuLink
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&link).Error; err != nil {
		return nil, translate(err, "链接")
	}
	return &link, nil
}

// FindByMenu 查询菜单下的全部链接
func (r *LinkRepository) FindByMenu(ctx context.Context, menuID uint) ([]model.MenuLink, error) {
	var links []model.MenuLink
	err := r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, translate(err, "链接")
	}
	return links, nil
}
