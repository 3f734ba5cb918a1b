package service

import (
	"context"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"scanmenu-platform/internal/slug"
	"scanmenu-platform/internal/testutil"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	links    *repository.LinkRepository
	menus    *repository.MenuRepository
	visits   *repository.VisitRepository
	logger   *zap.SugaredLogger
	registry *LinkRegistry
}

func newFixture(t *testing.T, opts ...RegistryOption) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:     db,
		links:  repository.NewLinkRepository(db),
		menus:  repository.NewMenuRepository(db),
		visits: repository.NewVisitRepository(db),
		logger: testutil.NewLogger(t),
	}
	f.registry = NewLinkRegistry(f.links, f.menus, f.logger, opts...)
	return f
}

// seedMenu 创建一个餐厅和一个指定状态的菜单
func (f *fixture) seedMenu(t *testing.T, status string) *model.Menu {
	t.Helper()
	ctx := context.Background()

	restaurant := &model.Restaurant{
		OwnerID:  1,
		NameEn:   "Olive House",
		NameAr:   "بيت الزيتون",
		Slug:     "olive-house-" + t.Name(),
		IsActive: true,
	}
	require.NoError(t, repository.NewRestaurantRepository(f.db).Create(ctx, restaurant))

	menu := &model.Menu{
		RestaurantID: restaurant.ID,
		Name:         "Dinner",
		PDFKey:       "menus/1/dinner.pdf",
		Status:       status,
		IsActive:     true,
	}
	require.NoError(t, f.menus.Create(ctx, menu))
	return menu
}

func (f *fixture) countLinks(t *testing.T, menuID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.MenuLink{}).Where("menu_id = ?", menuID).Count(&n).Error)
	return n
}

func (f *fixture) countVisits(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Visit{}).Count(&n).Error)
	return n
}

// sequence 依次返回给定短码，用完后回退到随机生成
func sequence(slugs ...string) func() string {
	i := 0
	return func() string {
		if i < len(slugs) {
			s := slugs[i]
			i++
			return s
		}
		return slug.Generate()
	}
}

func ptr[T any](v T) *T {
	return &v
}
