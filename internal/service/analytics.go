package service

import (
	"context"
	"scanmenu-platform/internal/apperr"
	"scanmenu-platform/internal/repository"
	"time"

	"go.uber.org/zap"
)

// UnknownBucket 维度值为空时使用的分组名
const UnknownBucket = "unknown"

// TimeRange 统计时间范围 [From, To)，零值表示不限
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Summary 访问统计。各维度计数之和都等于 Total
type Summary struct {
	Total     int64            `json:"total"`
	BySource  map[string]int64 `json:"by_source"`
	ByTable   map[string]int64 `json:"by_table"`
	ByCountry map[string]int64 `json:"by_country"`
	ByDay     map[string]int64 `json:"by_day"`
}

// Analytics 访问统计
type Analytics struct {
	links  LinkFinder
	menus  MenuLookup
	visits VisitAggregator
	logger *zap.SugaredLogger
}

// NewAnalytics 创建统计服务
func NewAnalytics(links LinkFinder, menus MenuLookup, visits VisitAggregator, logger *zap.SugaredLogger) *Analytics {
	return &Analytics{links: links, menus: menus, visits: visits, logger: logger}
}

// Summarize 统计单个链接的访问数据，链接停用后历史数据仍可查询
func (a *Analytics) Summarize(ctx context.Context, linkID uint, tr TimeRange) (*Summary, error) {
	if err := tr.validate(); err != nil {
		return nil, err
	}
	if _, err := a.links.FindByID(ctx, linkID); err != nil {
		return nil, err
	}
	return a.summarize(ctx, repository.VisitFilter{LinkID: linkID, From: tr.From, To: tr.To})
}

// SummarizeMenu 统计菜单下全部链接的访问数据
func (a *Analytics) SummarizeMenu(ctx context.Context, menuID uint, tr TimeRange) (*Summary, error) {
	if err := tr.validate(); err != nil {
		return nil, err
	}
	if _, err := a.menus.FindByID(ctx, menuID); err != nil {
		return nil, err
	}
	return a.summarize(ctx, repository.VisitFilter{MenuID: menuID, From: tr.From, To: tr.To})
}

func (a *Analytics) summarize(ctx context.Context, filter repository.VisitFilter) (*Summary, error) {
	agg, err := a.visits.Aggregate(ctx, filter,
		repository.DimSource, repository.DimTable, repository.DimCountry, repository.DimDay)
	if err != nil {
		a.logger.Errorw("访问统计查询失败", "link_id", filter.LinkID, "menu_id", filter.MenuID, "error", err)
		return nil, err
	}

	return &Summary{
		Total:     agg.Total,
		BySource:  buckets(agg.Groups[repository.DimSource]),
		ByTable:   buckets(agg.Groups[repository.DimTable]),
		ByCountry: buckets(agg.Groups[repository.DimCountry]),
		ByDay:     buckets(agg.Groups[repository.DimDay]),
	}, nil
}

// buckets 把空值归入 unknown，结果永不为 nil
func buckets(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		if k == "" {
			k = UnknownBucket
		}
		out[k] += v
	}
	return out
}

func (tr TimeRange) validate() error {
	if !tr.From.IsZero() && !tr.To.IsZero() && tr.From.After(tr.To) {
		return apperr.Validation("开始时间不能晚于结束时间")
	}
	return nil
}
