package service

import (
	"context"
	"errors"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlans(t *testing.T, f *fixture) *Plans {
	t.Helper()
	return NewPlans(repository.NewPlanRepository(f.db), repository.NewSubscriptionRepository(f.db),
		repository.NewUsageRepository(f.db), f.logger)
}

func TestPlans_FreeFallbackWithoutSeed(t *testing.T) {
	f := newFixture(t)
	plans := newPlans(t, f)

	plan, sub, err := plans.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.Equal(t, model.PlanFree, plan.Slug)
	assert.Equal(t, 10, plan.Limits.Links)
}

func TestPlans_CheckLinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plans := newPlans(t, f)
	require.NoError(t, plans.Seed(ctx))
	require.NoError(t, plans.Seed(ctx), "重复写入应无副作用")

	// seedMenu 创建的餐厅属于用户 1
	menu := f.seedMenu(t, model.MenuStatusPublished)
	var last *model.MenuLink
	for i := 0; i < 10; i++ {
		require.NoError(t, plans.Check(ctx, 1, ResourceLinks))
		link, err := f.registry.CreateLink(ctx, CreateLinkInput{MenuID: menu.ID})
		require.NoError(t, err)
		last = link
	}

	err := plans.Check(ctx, 1, ResourceLinks)
	assert.True(t, errors.Is(err, apperr.ErrQuotaExceeded))
	assert.Contains(t, apperr.Message(err), "10")

	// 其他用户不受影响
	require.NoError(t, plans.Check(ctx, 2, ResourceLinks))

	// 停用的链接不占额度
	require.NoError(t, f.registry.DeactivateLink(ctx, last.ID))
	require.NoError(t, plans.Check(ctx, 1, ResourceLinks))

	usage, err := plans.Usage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Usage{Restaurants: 1, Menus: 1, Links: 9}, usage.Usage)
}

func TestPlans_ArchivedMenusDoNotCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plans := newPlans(t, f)
	require.NoError(t, plans.Seed(ctx))

	menu := f.seedMenu(t, model.MenuStatusPublished)
	for _, name := range []string{"Lunch", "Drinks"} {
		require.NoError(t, f.menus.Create(ctx, &model.Menu{
			RestaurantID: menu.RestaurantID, Name: name, PDFKey: "menus/1/x.pdf", Status: model.MenuStatusDraft, IsActive: true,
		}))
	}
	assert.True(t, errors.Is(plans.Check(ctx, 1, ResourceMenus), apperr.ErrQuotaExceeded))
	assert.True(t, errors.Is(plans.Check(ctx, 1, ResourceRestaurants), apperr.ErrQuotaExceeded))

	require.NoError(t, f.menus.UpdateStatus(ctx, menu.ID, model.MenuStatusArchived))
	assert.NoError(t, plans.Check(ctx, 1, ResourceMenus))
}

func TestPlans_Subscribe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plans := newPlans(t, f)
	require.NoError(t, plans.Seed(ctx))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	plans.now = func() time.Time { return now }

	_, err := plans.Subscribe(ctx, SubscribeInput{UserID: 1, PlanSlug: model.PlanPro, PeriodEnd: now.Add(-time.Hour)})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = plans.Subscribe(ctx, SubscribeInput{UserID: 1, PlanSlug: "platinum", PeriodEnd: now.AddDate(0, 1, 0)})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	pro, err := plans.Subscribe(ctx, SubscribeInput{
		UserID: 1, PlanSlug: model.PlanPro, PeriodEnd: now.AddDate(0, 1, 0), StripeSubscriptionID: "sub_123",
	})
	require.NoError(t, err)

	plan, sub, err := plans.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PlanPro, plan.Slug)
	assert.Equal(t, pro.ID, sub.ID)

	// 同一个 Stripe 订阅不能开通两次
	_, err = plans.Subscribe(ctx, SubscribeInput{
		UserID: 2, PlanSlug: model.PlanPro, PeriodEnd: now.AddDate(0, 1, 0), StripeSubscriptionID: "sub_123",
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// 升级后原订阅被取消，仍然只有一个有效订阅
	enterprise, err := plans.Subscribe(ctx, SubscribeInput{UserID: 1, PlanSlug: model.PlanEnterprise, PeriodEnd: now.AddDate(1, 0, 0)})
	require.NoError(t, err)
	var active int64
	require.NoError(t, f.db.Model(&model.Subscription{}).Where("user_id = ? AND status = ?", 1, model.SubscriptionActive).Count(&active).Error)
	assert.Equal(t, int64(1), active)

	plan, sub, err = plans.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PlanEnterprise, plan.Slug)
	assert.Equal(t, enterprise.ID, sub.ID)

	// 过期后回到免费套餐
	plans.now = func() time.Time { return now.AddDate(2, 0, 0) }
	plan, sub, err = plans.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PlanFree, plan.Slug)
	assert.Nil(t, sub)
}
