package repository

import (
	"context"
	"errors"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"

	"gorm.io/gorm"
)

// PlanRepository 套餐持久化
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Seed 写入不存在的套餐，已存在的按 slug 跳过，返回新建的 slug
func (r *PlanRepository) Seed(ctx context.Context, plans []model.Plan) ([]string, error) {
	var created []string
	for i := range plans {
		plan := plans[i]
		_, err := r.FindBySlug(ctx, plan.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return created, err
		}
		if err := r.db.WithContext(ctx).Create(&plan).Error; err != nil {
			// 其他实例同时写入
			if IsDuplicate(err) {
				continue
			}
			return created, translate(err, "套餐")
		}
		created = append(created, plan.Slug)
	}
	return created, nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, translate(err, "套餐")
	}
	return &plan, nil
}

func (r *PlanRepository) FindBySlug(ctx context.Context, slug string) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&plan).Error; err != nil {
		return nil, translate(err, "套餐")
	}
	return &plan, nil
}

// ListActive 按价格升序列出可订阅的套餐
func (r *PlanRepository) ListActive(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&plans).Error
	if err != nil {
		return nil, translate(err, "套餐")
	}
	return plans, nil
}
