package service

import (
	"context"
	"fmt"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/metrics"
	"scanmenu-platform/internal/model"
	"scanmenu-platform/internal/repository"
	"scanmenu-platform/internal/slug"
	"strings"
	"time"

	"github.com/go-redis/cache/v9"
	"go.uber.org/zap"
)

const (
	// DefaultMaxSlugAttempts 生成唯一短码的最大尝试次数
	DefaultMaxSlugAttempts = 5
	// SlugCacheTTL 短码解析结果的缓存时长
	SlugCacheTTL = 5 * time.Minute

	slugCachePrefix = "menulink:slug:"
)

// StylePatch 样式修改，nil 字段保持不变，空字符串恢复默认值
type StylePatch struct {
	QRCodeColor     *string `json:"qr_code_color,omitempty" example:"#1A2B3C"`
	QRCodeLogo      *string `json:"qr_code_logo,omitempty"`
	FrameStyle      *string `json:"frame_style,omitempty" example:"rounded"`
	BackgroundColor *string `json:"background_color,omitempty" example:"#FFFFFF"`
}

// TrackingPatch 追踪信息修改，nil 字段保持不变
type TrackingPatch struct {
	Source   *string `json:"source,omitempty" example:"flyer"`
	Medium   *string `json:"medium,omitempty" example:"print"`
	Campaign *string `json:"campaign,omitempty"`
	Table    *string `json:"table,omitempty" example:"12"`
	Location *string `json:"location,omitempty"`
}

// CreateLinkInput 创建链接参数
type CreateLinkInput struct {
	MenuID   uint
	Name     string
	Style    *StylePatch
	Tracking *TrackingPatch
}

// UpdateLinkInput 修改链接参数。Slug 为空字符串时重新随机生成
type UpdateLinkInput struct {
	Name     *string
	Slug     *string
	Style    *StylePatch
	Tracking *TrackingPatch
	IsActive *bool
}

// RegistryOption LinkRegistry 可选配置
type RegistryOption func(*LinkRegistry)

// WithSlugFunc 替换短码生成函数
func WithSlugFunc(f slug.Func) RegistryOption {
	return func(r *LinkRegistry) {
		if f != nil {
			r.generate = f
		}
	}
}

// WithMaxAttempts 设置短码冲突时的最大尝试次数
func WithMaxAttempts(n int) RegistryOption {
	return func(r *LinkRegistry) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithCache 启用短码解析缓存
func WithCache(c *cache.Cache) RegistryOption {
	return func(r *LinkRegistry) {
		r.cache = c
	}
}

// LinkRegistry 管理菜单链接的生命周期
type LinkRegistry struct {
	links       LinkStore
	menus       MenuLookup
	cache       *cache.Cache
	generate    slug.Func
	maxAttempts int
	logger      *zap.SugaredLogger
}

// NewLinkRegistry 创建链接注册表
func NewLinkRegistry(links LinkStore, menus MenuLookup, logger *zap.SugaredLogger, opts ...RegistryOption) *LinkRegistry {
	r := &LinkRegistry{
		links:       links,
		menus:       menus,
		generate:    slug.Generate,
		maxAttempts: DefaultMaxSlugAttempts,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateLink 为菜单创建一个新的分享链接
func (r *LinkRegistry) CreateLink(ctx context.Context, in CreateLinkInput) (*model.MenuLink, error) {
	if in.MenuID == 0 {
		return nil, apperr.Validation("menu_id 不能为空")
	}

	menu, err := r.menus.FindByID(ctx, in.MenuID)
	if err != nil {
		return nil, err
	}
	if menu.Status == model.MenuStatusArchived {
		return nil, apperr.Validation("菜单已归档，不能创建链接")
	}

	link := &model.MenuLink{
		MenuID:   in.MenuID,
		Name:     strings.TrimSpace(in.Name),
		IsActive: true,
		Style: model.StyleConfig{
			QRCodeColor:     model.DefaultQRCodeColor,
			FrameStyle:      model.DefaultFrameStyle,
			BackgroundColor: model.DefaultBackgroundColor,
		},
	}
	applyStyle(&link.Style, in.Style)
	applyTracking(&link.Tracking, in.Tracking)

	if err := validateStruct(link); err != nil {
		return nil, err
	}

	if err := r.writeWithUniqueSlug(ctx, link, r.links.Create); err != nil {
		return nil, err
	}

	metrics.LinksCreated.Inc()
	r.logger.Infow("菜单链接创建成功", "link_id", link.ID, "menu_id", link.MenuID, "slug", link.Slug)
	return link, nil
}

// UpdateLink 修改链接属性，出错时不修改已存储的记录
func (r *LinkRegistry) UpdateLink(ctx context.Context, id uint, in UpdateLinkInput) (*model.MenuLink, error) {
	current, err := r.links.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
	}
	applyStyle(&updated.Style, in.Style)
	applyTracking(&updated.Tracking, in.Tracking)
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}

	requested, slugChanged := "", false
	if in.Slug != nil {
		requested = strings.TrimSpace(*in.Slug)
		slugChanged = requested != current.Slug
		if slugChanged && requested != "" && !slug.IsValid(requested) {
			return nil, apperr.Validation("短码只能包含字母、数字、下划线和连字符，长度 4 到 32")
		}
	}

	if err := validateStruct(&updated); err != nil {
		return nil, err
	}

	switch {
	case slugChanged && requested == "":
		err = r.writeWithUniqueSlug(ctx, &updated, r.links.Update)
	case slugChanged:
		updated.Slug = requested
		err = r.links.Update(ctx, &updated)
		if repository.IsDuplicate(err) {
			metrics.SlugCollisions.Inc()
			err = apperr.Validation("短码已被占用")
		}
	default:
		err = r.links.Update(ctx, &updated)
	}
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, current.Slug, updated.Slug)
	r.logger.Infow("菜单链接已更新", "link_id", updated.ID, "slug", updated.Slug, "is_active", updated.IsActive)
	return &updated, nil
}

// DeactivateLink 停用链接，重复调用无副作用
func (r *LinkRegistry) DeactivateLink(ctx context.Context, id uint) error {
	link, err := r.links.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !link.IsActive {
		return nil
	}

	if err := r.links.SetActive(ctx, id, false); err != nil {
		return err
	}

	r.invalidate(ctx, link.Slug)
	r.logger.Infow("菜单链接已停用", "link_id", id, "slug", link.Slug)
	return nil
}

// ResolveLink 按短码查找启用中的链接
func (r *LinkRegistry) ResolveLink(ctx context.Context, s string) (*model.MenuLink, error) {
	if s == "" {
		return nil, apperr.NotFound("链接不存在")
	}

	link, err := r.lookupBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if !link.IsActive {
		return nil, apperr.Inactive("链接已停用")
	}
	return link, nil
}

// GetLink 按 ID 查询链接（不论是否启用）
func (r *LinkRegistry) GetLink(ctx context.Context, id uint) (*model.MenuLink, error) {
	return r.links.FindByID(ctx, id)
}

// ListByMenu 查询菜单下的全部链接
func (r *LinkRegistry) ListByMenu(ctx context.Context, menuID uint) ([]model.MenuLink, error) {
	return r.links.FindByMenu(ctx, menuID)
}

// writeWithUniqueSlug 生成短码并写入，唯一索引冲突时换一个短码重试
func (r *LinkRegistry) writeWithUniqueSlug(ctx context.Context, link *model.MenuLink, write func(context.Context, *model.MenuLink) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		link.Slug = r.generate()

		err := write(ctx, link)
		if err == nil {
			return nil
		}
		if !repository.IsDuplicate(err) {
			return err
		}

		lastErr = err
		metrics.SlugCollisions.Inc()
		r.logger.Warnw("短码冲突，重新生成", "slug", link.Slug, "attempt", attempt)
	}

	r.logger.Errorw("短码重试次数耗尽", "menu_id", link.MenuID, "attempts", r.maxAttempts)
	return apperr.SlugExhausted(fmt.Sprintf("%d 次尝试后仍无法生成唯一短码", r.maxAttempts), lastErr)
}

func (r *LinkRegistry) lookupBySlug(ctx context.Context, s string) (*model.MenuLink, error) {
	if r.cache == nil {
		return r.links.FindBySlug(ctx, s)
	}

	var link model.MenuLink
	err := r.cache.Once(&cache.Item{
		Ctx:   ctx,
		Key:   slugCachePrefix + s,
		Value: &link,
		TTL:   SlugCacheTTL,
		Do: func(*cache.Item) (interface{}, error) {
			return r.links.FindBySlug(ctx, s)
		},
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// invalidate 删除短码缓存，失败只记日志
func (r *LinkRegistry) invalidate(ctx context.Context, slugs ...string) {
	if r.cache == nil {
		return
	}
	for _, s := range slugs {
		if s == "" {
			continue
		}
		if err := r.cache.Delete(ctx, slugCachePrefix+s); err != nil && err != cache.ErrCacheMiss {
			r.logger.Warnw("删除短码缓存失败", "slug", s, "error", err)
		}
	}
}

func applyStyle(dst *model.StyleConfig, p *StylePatch) {
	if p == nil {
		return
	}
	if p.QRCodeColor != nil {
		dst.QRCodeColor = orDefault(*p.QRCodeColor, model.DefaultQRCodeColor)
	}
	if p.QRCodeLogo != nil {
		dst.QRCodeLogo = strings.TrimSpace(*p.QRCodeLogo)
	}
	if p.FrameStyle != nil {
		dst.FrameStyle = orDefault(*p.FrameStyle, model.DefaultFrameStyle)
	}
	if p.BackgroundColor != nil {
		dst.BackgroundColor = orDefault(*p.BackgroundColor, model.DefaultBackgroundColor)
	}
}

func applyTracking(dst *model.TrackingMeta, p *TrackingPatch) {
	if p == nil {
		return
	}
	set := func(field *string, v *string) {
		if v != nil {
			*field = strings.TrimSpace(*v)
		}
	}
	set(&dst.Source, p.Source)
	set(&dst.Medium, p.Medium)
	set(&dst.Campaign, p.Campaign)
	set(&dst.Table, p.Table)
	set(&dst.Location, p.Location)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
