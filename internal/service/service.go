// Package service 实现菜单分享链接的核心业务：短码分配、访问记录、统计与过期清理。
// 所有状态都在持久层，组件通过构造函数注入仓储，不持有全局连接。
package service

import (
	"context"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"time"
)

// LinkStore 链接仓储，slug 唯一性必须由存储层的唯一索引保证
type LinkStore interface {
	Create(ctx context.Context, link *model.MenuLink) error
	Update(ctx context.Context, link *model.MenuLink) error
	SetActive(ctx context.Context, id uint, active bool) error
	FindByID(ctx context.Context, id uint) (*model.MenuLink, error)
	FindBySlug(ctx context.Context, slug string) (*model.MenuLink, error)
	FindByMenu(ctx context.Context, menuID uint) ([]model.MenuLink, error)
}

// LinkFinder 只读的链接查询
type LinkFinder interface {
	FindByID(ctx context.Context, id uint) (*model.MenuLink, error)
}

// MenuLookup 菜单查询
type MenuLookup interface {
	FindByID(ctx context.Context, id uint) (*model.Menu, error)
}

// VisitStore 访问记录写入
type VisitStore interface {
	Create(ctx context.Context, visit *model.Visit) error
}

// VisitAggregator 访问记录统计
type VisitAggregator interface {
	Aggregate(ctx context.Context, filter repository.VisitFilter, dims ...string) (*repository.Aggregate, error)
}

// VisitPurger 访问记录清理
type VisitPurger interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time, batch int) (int64, error)
}
