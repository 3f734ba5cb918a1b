package repository

import (
	"context"
	"errors"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepository_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(testutil.NewDB(t))

	created, err := repo.Seed(ctx, model.DefaultPlans())
	require.NoError(t, err)
	assert.Equal(t, []string{model.PlanFree, model.PlanPro, model.PlanEnterprise}, created)

	created, err = repo.Seed(ctx, model.DefaultPlans())
	require.NoError(t, err)
	assert.Empty(t, created)

	plans, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, int64(0), plans[0].Price)

	pro, err := repo.FindBySlug(ctx, model.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, 500, pro.Limits.Links)
	assert.Equal(t, 1000, pro.Limits.StorageMB)
	assert.Contains(t, pro.Features, "utm_tracking")

	_, err = repo.FindBySlug(ctx, "platinum")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSubscriptionRepository_OneActivePerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository(testutil.NewDB(t))
	now := time.Now().UTC()

	newSub := func(userID uint, status string) *model.Subscription {
		return &model.Subscription{
			UserID: userID, PlanID: 1, Status: status,
			CurrentPeriodStart: now, CurrentPeriodEnd: now.AddDate(0, 1, 0),
		}
	}

	require.NoError(t, repo.Create(ctx, newSub(1, model.SubscriptionActive)))
	err := repo.Create(ctx, newSub(1, model.SubscriptionActive))
	assert.True(t, errors.Is(err, ErrDuplicateKey), "同一用户只能有一个有效订阅: %v", err)

	// 非 active 的订阅不受限制
	require.NoError(t, repo.Create(ctx, newSub(1, model.SubscriptionCanceled)))
	require.NoError(t, repo.Create(ctx, newSub(1, model.SubscriptionCanceled)))
	require.NoError(t, repo.Create(ctx, newSub(2, model.SubscriptionActive)))

	// Activate 先取消旧订阅
	next := newSub(1, "")
	next.PlanID = 2
	require.NoError(t, repo.Activate(ctx, next))
	assert.Equal(t, model.SubscriptionActive, next.Status)

	current, err := repo.FindCurrentByUser(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, next.ID, current.ID)

	_, err = repo.FindCurrentByUser(ctx, 1, now.AddDate(0, 2, 0))
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "过期订阅不算有效")

	other, err := repo.FindCurrentByUser(ctx, 2, now)
	require.NoError(t, err)
	assert.Equal(t, uint(2), other.UserID)
}

func TestUsageRepository_Counts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	usage := NewUsageRepository(db)
	restaurants := NewRestaurantRepository(db)
	menus := NewMenuRepository(db)
	links := NewLinkRepository(db)

	mine := &model.Restaurant{OwnerID: 1, NameEn: "A", NameAr: "أ", Slug: "mine", IsActive: true}
	theirs := &model.Restaurant{OwnerID: 2, NameEn: "B", NameAr: "ب", Slug: "theirs", IsActive: true}
	require.NoError(t, restaurants.Create(ctx, mine))
	require.NoError(t, restaurants.Create(ctx, theirs))

	live := &model.Menu{RestaurantID: mine.ID, Name: "Dinner", PDFKey: "a.pdf", Status: model.MenuStatusPublished, IsActive: true}
	old := &model.Menu{RestaurantID: mine.ID, Name: "Old", PDFKey: "b.pdf", Status: model.MenuStatusArchived, IsActive: true}
	other := &model.Menu{RestaurantID: theirs.ID, Name: "Other", PDFKey: "c.pdf", Status: model.MenuStatusDraft, IsActive: true}
	for _, m := range []*model.Menu{live, old, other} {
		require.NoError(t, menus.Create(ctx, m))
	}

	require.NoError(t, links.Create(ctx, newLink(live.ID, "live0001")))
	require.NoError(t, links.Create(ctx, newLink(old.ID, "old00001")))
	off := newLink(live.ID, "off00001")
	require.NoError(t, links.Create(ctx, off))
	require.NoError(t, links.SetActive(ctx, off.ID, false))
	require.NoError(t, links.Create(ctx, newLink(other.ID, "othr0001")))

	n, err := usage.CountRestaurants(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = usage.CountMenus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "归档菜单不计入")

	n, err = usage.CountLinks(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "只统计启用中的链接")
}
