package service

import (
	"context"
	"errors"
	"fmt"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"time"

	"go.uber.org/zap"
)

// Resource 受套餐额度限制的资源
type Resource string

const (
	ResourceRestaurants Resource = "restaurants"
	ResourceMenus       Resource = "menus"
	ResourceLinks       Resource = "links"
)

var resourceNames = map[Resource]string{
	ResourceRestaurants: "餐厅",
	ResourceMenus:       "菜单",
	ResourceLinks:       "链接",
}

// PlanStore 套餐存储
type PlanStore interface {
	Seed(ctx context.Context, plans []model.Plan) ([]string, error)
	FindByID(ctx context.Context, id uint) (*model.Plan, error)
	FindBySlug(ctx context.Context, slug string) (*model.Plan, error)
	ListActive(ctx context.Context) ([]model.Plan, error)
}

// SubscriptionStore 订阅存储
type SubscriptionStore interface {
	Activate(ctx context.Context, sub *model.Subscription) error
	FindCurrentByUser(ctx context.Context, userID uint, now time.Time) (*model.Subscription, error)
}

// UsageCounter 统计用户已用额度
type UsageCounter interface {
	CountRestaurants(ctx context.Context, ownerID uint) (int64, error)
	CountMenus(ctx context.Context, ownerID uint) (int64, error)
	CountLinks(ctx context.Context, ownerID uint) (int64, error)
}

// Usage 已占用的额度
type Usage struct {
	Restaurants int64 `json:"restaurants"`
	Menus       int64 `json:"menus"`
	Links       int64 `json:"links"`
}

// PlanUsage 当前套餐、订阅和用量
type PlanUsage struct {
	Plan         *model.Plan         `json:"plan"`
	Subscription *model.Subscription `json:"subscription,omitempty"`
	Usage        Usage               `json:"usage"`
}

// SubscribeInput 为用户开通套餐
type SubscribeInput struct {
	UserID               uint
	PlanSlug             string
	PeriodEnd            time.Time
	StripeSubscriptionID string
	StripeCustomerID     string
}

// Plans 套餐查询与额度校验
type Plans struct {
	plans  PlanStore
	subs   SubscriptionStore
	usage  UsageCounter
	now    func() time.Time
	logger *zap.SugaredLogger
}

func NewPlans(plans PlanStore, subs SubscriptionStore, usage UsageCounter, logger *zap.SugaredLogger) *Plans {
	return &Plans{plans: plans, subs: subs, usage: usage, now: time.Now, logger: logger}
}

// Seed 写入内置套餐，可重复执行
func (p *Plans) Seed(ctx context.Context) error {
	created, err := p.plans.Seed(ctx, model.DefaultPlans())
	if err != nil {
		return err
	}
	if len(created) > 0 {
		p.logger.Infow("内置套餐已写入", "plans", created)
	}
	return nil
}

func (p *Plans) List(ctx context.Context) ([]model.Plan, error) {
	return p.plans.ListActive(ctx)
}

// Current 返回用户当前生效的套餐；没有有效订阅时使用免费套餐
func (p *Plans) Current(ctx context.Context, userID uint) (*model.Plan, *model.Subscription, error) {
	sub, err := p.subs.FindCurrentByUser(ctx, userID, p.now())
	switch {
	case err == nil:
		plan, err := p.plans.FindByID(ctx, sub.PlanID)
		if err != nil {
			return nil, nil, err
		}
		return plan, sub, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, nil, err
	}

	plan, err := p.plans.FindBySlug(ctx, model.PlanFree)
	if errors.Is(err, apperr.ErrNotFound) {
		// 尚未写入套餐时按内置免费额度处理
		free := model.DefaultPlans()[0]
		return &free, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return plan, nil, nil
}

// Check 在创建资源前校验额度，已用量达到上限时返回 QuotaExceeded
func (p *Plans) Check(ctx context.Context, userID uint, resource Resource) error {
	plan, _, err := p.Current(ctx, userID)
	if err != nil {
		return err
	}

	var limit int
	var used int64
	switch resource {
	case ResourceRestaurants:
		limit = plan.Limits.Restaurants
		used, err = p.usage.CountRestaurants(ctx, userID)
	case ResourceMenus:
		limit = plan.Limits.Menus
		used, err = p.usage.CountMenus(ctx, userID)
	case ResourceLinks:
		limit = plan.Limits.Links
		used, err = p.usage.CountLinks(ctx, userID)
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}
	if err != nil {
		return err
	}

	if used >= int64(limit) {
		p.logger.Infow("超出套餐额度", "user_id", userID, "plan", plan.Slug, "resource", resource, "limit", limit)
		return apperr.QuotaExceeded(fmt.Sprintf("%s套餐最多可创建 %d 个%s，请升级套餐", plan.Name, limit, resourceNames[resource]))
	}
	return nil
}

// Usage 返回当前套餐和已用额度
func (p *Plans) Usage(ctx context.Context, userID uint) (*PlanUsage, error) {
	plan, sub, err := p.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	var usage Usage
	if usage.Restaurants, err = p.usage.CountRestaurants(ctx, userID); err != nil {
		return nil, err
	}
	if usage.Menus, err = p.usage.CountMenus(ctx, userID); err != nil {
		return nil, err
	}
	if usage.Links, err = p.usage.CountLinks(ctx, userID); err != nil {
		return nil, err
	}
	return &PlanUsage{Plan: plan, Subscription: sub, Usage: usage}, nil
}

// Subscribe 为用户开通套餐，原有的有效订阅被取消
func (p *Plans) Subscribe(ctx context.Context, in SubscribeInput) (*model.Subscription, error) {
	if in.UserID == 0 {
		return nil, apperr.Validation("缺少用户")
	}
	now := p.now().UTC()
	if !in.PeriodEnd.After(now) {
		return nil, apperr.Validation("订阅结束时间必须晚于当前时间")
	}

	plan, err := p.plans.FindBySlug(ctx, in.PlanSlug)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperr.Validation("套餐已下架")
	}

	sub := &model.Subscription{
		UserID:             in.UserID,
		PlanID:             plan.ID,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   in.PeriodEnd.UTC(),
		StripeCustomerID:   in.StripeCustomerID,
	}
	if in.StripeSubscriptionID != "" {
		id := in.StripeSubscriptionID
		sub.StripeSubscriptionID = &id
	}
	if err := p.subs.Activate(ctx, sub); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Validation("Stripe 订阅 ID 已被使用")
		}
		return nil, err
	}

	p.logger.Infow("套餐已开通", "user_id", in.UserID, "plan", plan.Slug, "period_end", sub.CurrentPeriodEnd)
	return sub, nil
}
